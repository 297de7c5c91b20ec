// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp is the adapter-layer repository of user accounts,
// mapping the repo.Users interface onto a PostgreSQL database with
// help of the GORM framework.
package usersrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, email, hashedPassword string) (*model.User, error) {
	return Create(ctx, cq.Conn, email, hashedPassword)
}

func (cq connQueryer) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, cq.Conn, email)
}

func (cq connQueryer) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return GetByID(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, email, hashedPassword string) (*model.User, error) {
	return Create(ctx, tq.Tx, email, hashedPassword)
}

func (tq txQueryer) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, tq.Tx, email)
}

func (tq txQueryer) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return GetByID(ctx, tq.Tx, userID)
}
