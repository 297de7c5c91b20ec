// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package servicesrp is the adapter-layer repository of vehicle
// service history, mapping the repo.ServiceRecords interface onto a
// PostgreSQL database with help of the GORM framework.
package servicesrp

import (
	"context"

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

func (services *Repo) Conn(c repo.Conn) repo.ServiceRecordsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, r *model.ServiceRecord) (*model.ServiceRecord, error) {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) List(ctx context.Context, vin string) ([]model.ServiceRecord, error) {
	return List(ctx, cq.Conn, vin)
}

func (cq connQueryer) Delete(ctx context.Context, vin string, recordID int64) error {
	return Delete(ctx, cq.Conn, vin, recordID)
}

type txQueryer struct {
	*postgres.Tx
}

func (services *Repo) Tx(tx repo.Tx) repo.ServiceRecordsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, r *model.ServiceRecord) (*model.ServiceRecord, error) {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) List(ctx context.Context, vin string) ([]model.ServiceRecord, error) {
	return List(ctx, tq.Tx, vin)
}

func (tq txQueryer) Delete(ctx context.Context, vin string, recordID int64) error {
	return Delete(ctx, tq.Tx, vin, recordID)
}
