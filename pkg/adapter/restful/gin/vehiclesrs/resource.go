// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, allowing the
// vehicle catalog REST APIs to be accepted and delegated to the
// vehicles use cases respectively.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/authn"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/usecase/vehiclesuc"
)

type resource struct {
	vehicles *vehiclesuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/garage/v1/vehicles
//     in order to register a new vehicle for the acting user,
//  2. GET request to /api/garage/v1/vehicles/my-vehicles
//     in order to list the owned vehicles with filtering/pagination,
//  3. GET request to /api/garage/v1/vehicles/shared-with-me
//     in order to list the vehicles which others shared with the user,
//  4. PUT request to /api/garage/v1/vehicles/:vin
//     in order to partially update an owned vehicle,
//  5. DELETE request to /api/garage/v1/vehicles/:vin
//     in order to soft-delete an owned vehicle.
//
// All routes require an authenticated user.
func Register(r *gin.RouterGroup, vehicles *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.POST("vehicles", rs.CreateVehicle)
	r.GET("vehicles/my-vehicles", rs.ListOwnedVehicles)
	r.GET("vehicles/shared-with-me", rs.ListSharedVehicles)
	r.PUT("vehicles/:vin", rs.UpdateVehicle)
	r.DELETE("vehicles/:vin", rs.DeleteVehicle)
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	req := rs.DserCreateVehicleReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	v, err := rs.vehicles.Create(c, u.ID, req.Vehicle)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) ListOwnedVehicles(c *gin.Context) {
	req := rs.DserListVehiclesReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	vs, err := rs.vehicles.ListOwned(c, u.ID, req.Filter)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rs *resource) ListSharedVehicles(c *gin.Context) {
	u := authn.CurrentUser(c)
	vs, err := rs.vehicles.ListShared(c, u.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	req := rs.DserUpdateVehicleReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	v, err := rs.vehicles.Update(c, req.VIN, u.ID, req.Update)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) DeleteVehicle(c *gin.Context) {
	req := rs.DserVehicleURI(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	if err := rs.vehicles.SoftDelete(c, req.VIN, u.ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "vehicle deleted"})
}
