// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vehicle models a garage vehicle, keyed by its VIN. A vehicle has
// exactly one owner at any time and ownership is not transferable.
// The IsDeleted flag implements soft deletion: a deleted vehicle row
// is retained, but must be invisible to every listing, query, and
// access resolution operation. No operation may take a vehicle out of
// the deleted state again.
type Vehicle struct {
	VIN       string    `json:"vin"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	Color     string    `json:"color,omitempty"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	IsDeleted bool      `json:"-"`
}

// VIN length bounds. Real VINs are 17 characters, but shorter plates
// down to 4 characters are accepted for pre-1981 vehicles.
const (
	MinVINLen = 4
	MaxVINLen = 17
)

// MinYear is the exclusive lower bound for a vehicle model year
// (the first automobile is dated 1886).
const MinYear = 1885

// Validate checks the vehicle fields against the catalog constraints.
// The model year upper bound is the next calendar year, so vehicles of
// an upcoming model year may be registered ahead of time.
func (v *Vehicle) Validate() error {
	if l := len(v.VIN); l < MinVINLen || l > MaxVINLen {
		return fmt.Errorf(
			"vin length (%d) is out of the [%d, %d] range",
			l, MinVINLen, MaxVINLen,
		)
	}
	if v.Brand == "" {
		return fmt.Errorf("brand must be non-empty")
	}
	if v.Model == "" {
		return fmt.Errorf("model must be non-empty")
	}
	if max := time.Now().Year() + 1; v.Year <= MinYear || v.Year > max {
		return fmt.Errorf(
			"year (%d) is out of the (%d, %d] range", v.Year, MinYear, max,
		)
	}
	if v.Mileage < 0 {
		return fmt.Errorf("mileage (%d) is negative", v.Mileage)
	}
	return nil
}

// VehicleUpdate carries a partial update of the mutable vehicle
// fields. Nil fields are left untouched; only fields with a concrete
// present value are written. The VIN and owner may not be updated.
type VehicleUpdate struct {
	Brand   *string
	Model   *string
	Year    *int
	Mileage *int
	Color   *string
}

// IsZero reports whether the update carries no field at all.
func (u VehicleUpdate) IsZero() bool {
	return u.Brand == nil && u.Model == nil && u.Year == nil &&
		u.Mileage == nil && u.Color == nil
}

// Validate checks the present fields against the same constraints
// which the Vehicle.Validate method enforces at creation time.
func (u VehicleUpdate) Validate() error {
	if u.Brand != nil && *u.Brand == "" {
		return fmt.Errorf("brand must be non-empty")
	}
	if u.Model != nil && *u.Model == "" {
		return fmt.Errorf("model must be non-empty")
	}
	if u.Year != nil {
		if max := time.Now().Year() + 1; *u.Year <= MinYear || *u.Year > max {
			return fmt.Errorf(
				"year (%d) is out of the (%d, %d] range",
				*u.Year, MinYear, max,
			)
		}
	}
	if u.Mileage != nil && *u.Mileage < 0 {
		return fmt.Errorf("mileage (%d) is negative", *u.Mileage)
	}
	return nil
}

// Vehicle listing sort orders, by model year.
const (
	SortYearAsc  = "year"
	SortYearDesc = "-year"
)

// DefaultListLimit bounds a vehicles listing page when the caller does
// not specify a limit.
const DefaultListLimit = 20

// VehicleFilter restricts and paginates an owned-vehicles listing.
type VehicleFilter struct {
	Brand string // case-insensitive substring match, empty matches all
	Sort  string // SortYearAsc or SortYearDesc
	Skip  int
	Limit int
}

// Normalize fills the filter defaults: descending year order and the
// DefaultListLimit page size.
func (f *VehicleFilter) Normalize() error {
	switch f.Sort {
	case "":
		f.Sort = SortYearDesc
	case SortYearAsc, SortYearDesc:
	default:
		return fmt.Errorf("unknown sort order: %q", f.Sort)
	}
	if f.Skip < 0 {
		return fmt.Errorf("skip (%d) is negative", f.Skip)
	}
	switch {
	case f.Limit < 0:
		return fmt.Errorf("limit (%d) is negative", f.Limit)
	case f.Limit == 0:
		f.Limit = DefaultListLimit
	}
	return nil
}

// SharedVehicle annotates a vehicle which is visible to a non-owner
// through a grant, carrying the grant permission and the owner email
// for display.
type SharedVehicle struct {
	Vehicle
	Permission Permission `json:"permission"`
	OwnerEmail string     `json:"owner_email"`
}
