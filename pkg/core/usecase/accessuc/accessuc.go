// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package accessuc contains the access-control and sharing UseCase.
// It decides, for a given (user, vehicle, acceptable permissions)
// triple, whether access is granted and at which role, and it
// maintains the grant rows which feed that decision: sharing a
// vehicle with another user, listing a vehicle's grants, and revoking
// a grant.
//
// Absent vehicles and insufficient access resolve to the same
// not-found outcome on purpose, so unauthorized callers cannot probe
// which VINs exist.
package accessuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
)

// ErrSelfShare indicates an attempt to share a vehicle with its own
// owner.
var ErrSelfShare = errors.New("cannot share a vehicle with its owner")

// UseCase represents the access-control and sharing use case. It
// holds a database connection pool and the vehicles, users, and
// grants repository instances.
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles
	usersrp    repo.Users
	accessrp   repo.VehicleAccesses
}

// New instantiates an access-control use case.
func New(
	p repo.Pool, v repo.Vehicles, u repo.Users, a repo.VehicleAccesses,
) *UseCase {
	return &UseCase{pool: p, vehiclesrp: v, usersrp: u, accessrp: a}
}

// Resolve determines whether userID may access the non-deleted
// vehicle with the given VIN, given the set of acceptable permission
// labels, and at which role.
//
// Ownership is the fast, unconditional path: the owner passes with
// the owner role regardless of required (even when it is empty).
// Otherwise, when required is non-empty, a grant for (vin, userID)
// whose permission is a member of required allows access with that
// permission as the role; the vehicle is re-fetched so a concurrently
// soft-deleted vehicle stays invisible. Every other case is the
// not-found outcome.
func (access *UseCase) Resolve(
	ctx context.Context, vin string, userID uuid.UUID,
	required []model.Permission,
) (v *model.Vehicle, role model.Role, err error) {
	err = access.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, role, err = access.resolve(ctx, c, vin, userID, required)
		return err
	})
	if err != nil {
		v, role = nil, ""
	}
	return
}

func (access *UseCase) resolve(
	ctx context.Context, c repo.Conn, vin string, userID uuid.UUID,
	required []model.Permission,
) (*model.Vehicle, model.Role, error) {
	vq := access.vehiclesrp.Conn(c)
	v, err := vq.FindActiveOwned(ctx, vin, userID)
	if err == nil {
		return v, model.RoleOwner, nil
	}
	var ce *cerr.Error
	if !errors.As(err, &ce) {
		return nil, "", fmt.Errorf("finding owned vehicle: %w", err)
	}
	if len(required) == 0 {
		return nil, "", cerr.NotFound(errVehicleAccess)
	}
	aq := access.accessrp.Conn(c)
	g, err := aq.FindGranted(ctx, vin, userID, required)
	if err != nil {
		if errors.As(err, &ce) {
			return nil, "", cerr.NotFound(errVehicleAccess)
		}
		return nil, "", fmt.Errorf("finding grant: %w", err)
	}
	v, err = vq.FindActive(ctx, vin)
	if err != nil {
		if errors.As(err, &ce) {
			return nil, "", cerr.NotFound(errVehicleAccess)
		}
		return nil, "", fmt.Errorf("re-fetching vehicle: %w", err)
	}
	return v, g.Permission.Role(), nil
}

// errVehicleAccess is the single caller-visible cause for every
// failed resolution, so absent vehicles and missing grants cannot be
// told apart.
var errVehicleAccess = errors.New("vehicle not found or not accessible")

// Share creates or updates a grant of the given permission for the
// user registered with granteeEmail on the ownerID-owned vehicle with
// the given VIN. Re-sharing overwrites the permission of the existing
// grant. The acting user must own the (non-deleted) vehicle, the
// grantee must exist, and the grantee may not be the owner; all three
// are checked before any write.
func (access *UseCase) Share(
	ctx context.Context, vin string, ownerID uuid.UUID,
	granteeEmail string, p model.Permission,
) (g *model.VehicleAccess, err error) {
	if err := p.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = access.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := access.vehiclesrp.Conn(c).FindActiveOwned(
			ctx, vin, ownerID,
		); err != nil {
			return err
		}
		grantee, err := access.usersrp.Conn(c).GetByEmail(ctx, granteeEmail)
		if err != nil {
			return err
		}
		if grantee.ID == ownerID {
			return cerr.BadRequest(ErrSelfShare)
		}
		g, err = access.accessrp.Conn(c).Upsert(ctx, vin, grantee.ID, p)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// ListAccess returns all grants of the ownerID-owned vehicle with the
// given VIN, joined with the grantee emails for display and ordered
// by grant insertion.
func (access *UseCase) ListAccess(
	ctx context.Context, vin string, ownerID uuid.UUID,
) (gs []model.VehicleAccessWithEmail, err error) {
	err = access.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := access.vehiclesrp.Conn(c).FindActiveOwned(
			ctx, vin, ownerID,
		); err != nil {
			return err
		}
		gs, err = access.accessrp.Conn(c).ListWithEmails(ctx, vin)
		return err
	})
	if err != nil {
		gs = nil
	}
	return
}

// Revoke hard-deletes the grant of granteeID on the ownerID-owned
// vehicle with the given VIN. Revoking a grant which does not exist
// reports a not-found error, distinguishable from a successful
// (idempotent) revocation.
func (access *UseCase) Revoke(
	ctx context.Context, vin string, ownerID, granteeID uuid.UUID,
) error {
	return access.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := access.vehiclesrp.Conn(c).FindActiveOwned(
			ctx, vin, ownerID,
		); err != nil {
			return err
		}
		return access.accessrp.Conn(c).Revoke(ctx, vin, granteeID)
	})
}
