// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrp is the adapter-layer repository of the vehicle
// catalog, mapping the repo.Vehicles interface onto a PostgreSQL
// database with help of the GORM framework.
package vehiclesrp

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

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) FindActive(ctx context.Context, vin string) (*model.Vehicle, error) {
	return FindActive(ctx, cq.Conn, vin)
}

func (cq connQueryer) FindActiveOwned(ctx context.Context, vin string, ownerID uuid.UUID) (*model.Vehicle, error) {
	return FindActiveOwned(ctx, cq.Conn, vin, ownerID)
}

func (cq connQueryer) ListOwned(ctx context.Context, ownerID uuid.UUID, f model.VehicleFilter) ([]model.Vehicle, error) {
	return ListOwned(ctx, cq.Conn, ownerID, f)
}

func (cq connQueryer) ListShared(ctx context.Context, userID uuid.UUID) ([]model.SharedVehicle, error) {
	return ListShared(ctx, cq.Conn, userID)
}

func (cq connQueryer) Update(ctx context.Context, vin string, ownerID uuid.UUID, u model.VehicleUpdate) (*model.Vehicle, error) {
	return Update(ctx, cq.Conn, vin, ownerID, u)
}

func (cq connQueryer) SoftDelete(ctx context.Context, vin string, ownerID uuid.UUID) error {
	return SoftDelete(ctx, cq.Conn, vin, ownerID)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) FindActive(ctx context.Context, vin string) (*model.Vehicle, error) {
	return FindActive(ctx, tq.Tx, vin)
}

func (tq txQueryer) FindActiveOwned(ctx context.Context, vin string, ownerID uuid.UUID) (*model.Vehicle, error) {
	return FindActiveOwned(ctx, tq.Tx, vin, ownerID)
}

func (tq txQueryer) ListOwned(ctx context.Context, ownerID uuid.UUID, f model.VehicleFilter) ([]model.Vehicle, error) {
	return ListOwned(ctx, tq.Tx, ownerID, f)
}

func (tq txQueryer) ListShared(ctx context.Context, userID uuid.UUID) ([]model.SharedVehicle, error) {
	return ListShared(ctx, tq.Tx, userID)
}

func (tq txQueryer) Update(ctx context.Context, vin string, ownerID uuid.UUID, u model.VehicleUpdate) (*model.Vehicle, error) {
	return Update(ctx, tq.Tx, vin, ownerID, u)
}

func (tq txQueryer) SoftDelete(ctx context.Context, vin string, ownerID uuid.UUID) error {
	return SoftDelete(ctx, tq.Tx, vin, ownerID)
}
