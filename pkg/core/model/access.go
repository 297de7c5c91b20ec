// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// VehicleAccess is a grant record associating one user with one
// vehicle at one permission label. At most one grant exists per
// (vehicle, user) pair; re-sharing overwrites the permission of the
// existing grant instead of duplicating it. A revoked grant is
// deleted outright.
type VehicleAccess struct {
	ID         int64      `json:"id"`
	VehicleVIN string     `json:"vehicle_vin"`
	UserID     uuid.UUID  `json:"user_id"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
}

// VehicleAccessWithEmail joins a grant with the grantee email for
// display in the owner's access listing.
type VehicleAccessWithEmail struct {
	VehicleAccess
	Email string `json:"email"`
}
