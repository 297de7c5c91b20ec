// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"
)

// ServiceRecord models one service-history entry of a vehicle, such
// as an oil change or a major maintenance. Records belong to exactly
// one vehicle and are keyed by an auto-incrementing id.
type ServiceRecord struct {
	ID          int64     `json:"id"`
	VehicleVIN  string    `json:"vehicle_vin"`
	Description string    `json:"description"`
	Mileage     int       `json:"mileage"`
	Cost        *int      `json:"cost"`
	ServiceName string    `json:"service_name,omitempty"`
	Date        time.Time `json:"date"`
}

// MinServiceDescriptionLen is the minimum acceptable length of a
// service record description.
const MinServiceDescriptionLen = 2

// Validate checks the record fields. Mileage is the odometer value at
// service time and must be positive; cost and service name stay
// optional.
func (r *ServiceRecord) Validate() error {
	if len(r.Description) < MinServiceDescriptionLen {
		return fmt.Errorf(
			"description is shorter than %d characters",
			MinServiceDescriptionLen,
		)
	}
	if r.Mileage <= 0 {
		return fmt.Errorf("mileage (%d) is not positive", r.Mileage)
	}
	if r.Cost != nil && *r.Cost < 0 {
		return fmt.Errorf("cost (%d) is negative", *r.Cost)
	}
	return nil
}
