// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package accessrp is the adapter-layer repository of vehicle sharing
// grants, mapping the repo.VehicleAccesses interface onto a
// PostgreSQL database with help of the GORM framework. It maintains
// grant state only; ownership verification belongs to the calling use
// case.
package accessrp

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

func (access *Repo) Conn(c repo.Conn) repo.VehicleAccessesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Upsert(ctx context.Context, vin string, userID uuid.UUID, p model.Permission) (*model.VehicleAccess, error) {
	return Upsert(ctx, cq.Conn, vin, userID, p)
}

func (cq connQueryer) FindGranted(ctx context.Context, vin string, userID uuid.UUID, perms []model.Permission) (*model.VehicleAccess, error) {
	return FindGranted(ctx, cq.Conn, vin, userID, perms)
}

func (cq connQueryer) ListWithEmails(ctx context.Context, vin string) ([]model.VehicleAccessWithEmail, error) {
	return ListWithEmails(ctx, cq.Conn, vin)
}

func (cq connQueryer) Revoke(ctx context.Context, vin string, userID uuid.UUID) error {
	return Revoke(ctx, cq.Conn, vin, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (access *Repo) Tx(tx repo.Tx) repo.VehicleAccessesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Upsert(ctx context.Context, vin string, userID uuid.UUID, p model.Permission) (*model.VehicleAccess, error) {
	return Upsert(ctx, tq.Tx, vin, userID, p)
}

func (tq txQueryer) FindGranted(ctx context.Context, vin string, userID uuid.UUID, perms []model.Permission) (*model.VehicleAccess, error) {
	return FindGranted(ctx, tq.Tx, vin, userID, perms)
}

func (tq txQueryer) ListWithEmails(ctx context.Context, vin string) ([]model.VehicleAccessWithEmail, error) {
	return ListWithEmails(ctx, tq.Tx, vin)
}

func (tq txQueryer) Revoke(ctx context.Context, vin string, userID uuid.UUID) error {
	return Revoke(ctx, tq.Tx, vin, userID)
}
