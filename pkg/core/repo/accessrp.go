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

type VehicleAccessesConnQueryer interface {
	VehicleAccessesQueryer
}

type VehicleAccessesTxQueryer interface {
	VehicleAccessesQueryer
}

// VehicleAccessesQueryer lists the sharing-manager queries over grant
// rows. The queries maintain grant state only; verifying that the
// acting user owns the vehicle (and that grantee != owner) is the
// responsibility of the calling use case.
type VehicleAccessesQueryer interface {
	// Upsert creates a grant for (vin, userID) or overwrites the
	// permission of the existing one. The operation is atomic with
	// respect to the existence check: two concurrent upserts for the
	// same pair may not produce two rows.
	Upsert(ctx context.Context, vin string, userID uuid.UUID, p model.Permission) (*model.VehicleAccess, error)
	// FindGranted returns the grant for (vin, userID) if its
	// permission is a member of the perms set, and cerr.NotFound
	// otherwise.
	FindGranted(ctx context.Context, vin string, userID uuid.UUID, perms []model.Permission) (*model.VehicleAccess, error)
	// ListWithEmails returns all grants of a vehicle joined with the
	// grantee emails, in insertion order.
	ListWithEmails(ctx context.Context, vin string) ([]model.VehicleAccessWithEmail, error)
	// Revoke hard-deletes the single grant of (vin, userID),
	// reporting cerr.NotFound when there was nothing to revoke.
	Revoke(ctx context.Context, vin string, userID uuid.UUID) error
}

type VehicleAccesses interface {
	Conn(Conn) VehicleAccessesConnQueryer
	Tx(Tx) VehicleAccessesTxQueryer
}
