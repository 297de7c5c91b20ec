// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

// VehiclesQueryer lists the vehicle catalog queries. All lookups and
// listings exclude soft-deleted rows, except SoftDelete itself which
// only requires ownership (so deleting twice stays idempotent).
// Absent or inaccessible vehicles surface as cerr.NotFound without
// distinguishing the two cases.
type VehiclesQueryer interface {
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	// FindActive returns the non-deleted vehicle with the given VIN.
	FindActive(ctx context.Context, vin string) (*model.Vehicle, error)
	// FindActiveOwned returns the non-deleted vehicle with the given
	// VIN only if it is owned by ownerID.
	FindActiveOwned(ctx context.Context, vin string, ownerID uuid.UUID) (*model.Vehicle, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID, f model.VehicleFilter) ([]model.Vehicle, error)
	// ListShared returns the non-deleted vehicles for which userID
	// holds any grant, annotated with the grant permission and the
	// owner email.
	ListShared(ctx context.Context, userID uuid.UUID) ([]model.SharedVehicle, error)
	// Update applies the non-nil fields of u to the vehicle with the
	// given VIN, owned by ownerID and not deleted, returning the
	// updated vehicle.
	Update(ctx context.Context, vin string, ownerID uuid.UUID, u model.VehicleUpdate) (*model.Vehicle, error)
	// SoftDelete flips the is_deleted flag of the ownerID-owned
	// vehicle with the given VIN.
	SoftDelete(ctx context.Context, vin string, ownerID uuid.UUID) error
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
