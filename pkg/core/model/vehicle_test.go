// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vastarion/garage/pkg/core/model"
)

func validVehicle() model.Vehicle {
	return model.Vehicle{
		VIN:     "WVWZZZ1JZXW000001",
		Brand:   "Volkswagen",
		Model:   "Golf",
		Year:    1999,
		Mileage: 120000,
	}
}

func TestVehicleValidate(t *testing.T) {
	nextYear := time.Now().Year() + 1
	for _, tc := range []struct {
		name   string
		mutate func(v *model.Vehicle)
		ok     bool
	}{
		{name: "valid", mutate: func(v *model.Vehicle) {}, ok: true},
		{
			name:   "min vin length",
			mutate: func(v *model.Vehicle) { v.VIN = "A123" },
			ok:     true,
		},
		{
			name:   "next model year",
			mutate: func(v *model.Vehicle) { v.Year = nextYear },
			ok:     true,
		},
		{
			name:   "vin too short",
			mutate: func(v *model.Vehicle) { v.VIN = "A12" },
		},
		{
			name: "vin too long",
			mutate: func(v *model.Vehicle) {
				v.VIN = strings.Repeat("A", 18)
			},
		},
		{
			name:   "empty brand",
			mutate: func(v *model.Vehicle) { v.Brand = "" },
		},
		{
			name:   "empty model",
			mutate: func(v *model.Vehicle) { v.Model = "" },
		},
		{
			name:   "year at lower bound",
			mutate: func(v *model.Vehicle) { v.Year = 1885 },
		},
		{
			name:   "year after next year",
			mutate: func(v *model.Vehicle) { v.Year = nextYear + 1 },
		},
		{
			name:   "negative mileage",
			mutate: func(v *model.Vehicle) { v.Mileage = -1 },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := validVehicle()
			tc.mutate(&v)
			err := v.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestVehicleFilterNormalize(t *testing.T) {
	f := model.VehicleFilter{}
	assert.NoError(t, f.Normalize())
	assert.Equal(t, model.SortYearDesc, f.Sort)
	assert.Equal(t, model.DefaultListLimit, f.Limit)
	assert.Zero(t, f.Skip)

	f = model.VehicleFilter{Sort: model.SortYearAsc, Skip: 5, Limit: 3}
	assert.NoError(t, f.Normalize())
	assert.Equal(t, model.SortYearAsc, f.Sort)
	assert.Equal(t, 3, f.Limit)

	f = model.VehicleFilter{Sort: "vin"}
	assert.Error(t, f.Normalize())
	f = model.VehicleFilter{Skip: -1}
	assert.Error(t, f.Normalize())
	f = model.VehicleFilter{Limit: -1}
	assert.Error(t, f.Normalize())
}

func TestVehicleUpdateValidate(t *testing.T) {
	var u model.VehicleUpdate
	assert.True(t, u.IsZero())
	assert.NoError(t, u.Validate(), "an empty update stays valid")

	brand := "Opel"
	u.Brand = &brand
	assert.False(t, u.IsZero())
	assert.NoError(t, u.Validate())

	empty := ""
	assert.Error(
		t, model.VehicleUpdate{Model: &empty}.Validate(),
		"present fields must satisfy the creation constraints",
	)
	badYear := 1885
	assert.Error(t, model.VehicleUpdate{Year: &badYear}.Validate())
	badMileage := -3
	assert.Error(t, model.VehicleUpdate{Mileage: &badMileage}.Validate())
}
