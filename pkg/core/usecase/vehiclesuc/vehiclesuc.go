// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicle catalog UseCase: creating
// vehicles, listing the owned and shared-with-me garages, partially
// updating vehicle fields, and soft-deleting a vehicle. Every
// operation here is scoped to the acting user; the delegated-access
// decisions live in the accessuc package instead.
package vehiclesuc

import (
	"context"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
)

// UseCase represents the vehicle catalog use case. It holds a
// database connection pool and the vehicles repository instance.
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles
}

// New instantiates a vehicle catalog use case.
func New(p repo.Pool, v repo.Vehicles) *UseCase {
	return &UseCase{pool: p, vehiclesrp: v}
}

// Create use case registers a new vehicle owned by ownerID. Field
// constraints are validated before any round trip; a duplicate VIN
// surfaces as a conflict error from the repository.
func (vehicles *UseCase) Create(
	ctx context.Context, ownerID uuid.UUID, v model.Vehicle,
) (created *model.Vehicle, err error) {
	if err := v.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	v.OwnerID = ownerID
	v.IsDeleted = false
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		created, err = q.Create(ctx, &v)
		return err
	})
	if err != nil {
		created = nil
	}
	return
}

// ListOwned use case returns the caller's non-deleted vehicles,
// optionally substring-filtered on brand (case-insensitive), sorted
// by model year, and paginated by offset/limit.
func (vehicles *UseCase) ListOwned(
	ctx context.Context, ownerID uuid.UUID, f model.VehicleFilter,
) (vs []model.Vehicle, err error) {
	if err := f.Normalize(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		vs, err = q.ListOwned(ctx, ownerID, f)
		return err
	})
	if err != nil {
		vs = nil
	}
	return
}

// ListShared use case returns the non-deleted vehicles which other
// users shared with the caller, each annotated with the grant
// permission and the owner's email.
func (vehicles *UseCase) ListShared(
	ctx context.Context, userID uuid.UUID,
) (vs []model.SharedVehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		vs, err = q.ListShared(ctx, userID)
		return err
	})
	if err != nil {
		vs = nil
	}
	return
}

// Update use case applies the present fields of u to the
// ownerID-owned vehicle with the given VIN. Unset fields are left
// untouched. Vehicles which are absent, deleted, or owned by someone
// else surface as the same not-found outcome.
func (vehicles *UseCase) Update(
	ctx context.Context, vin string, ownerID uuid.UUID, u model.VehicleUpdate,
) (updated *model.Vehicle, err error) {
	if err := u.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		updated, err = q.Update(ctx, vin, ownerID, u)
		return err
	})
	if err != nil {
		updated = nil
	}
	return
}

// SoftDelete use case flips the is_deleted flag of the ownerID-owned
// vehicle with the given VIN. The row is retained; all listing and
// access operations treat the vehicle as invisible afterwards.
func (vehicles *UseCase) SoftDelete(
	ctx context.Context, vin string, ownerID uuid.UUID,
) error {
	return vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		return q.SoftDelete(ctx, vin, ownerID)
	})
}
