// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sharingrs realizes the vehicle sharing resource, allowing
// the owner-only grant management REST APIs to be accepted and
// delegated to the access-control use cases respectively.
package sharingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/authn"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/usecase/accessuc"
)

type resource struct {
	access *accessuc.UseCase
}

// Register instantiates a resource adapting the access-control use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/garage/v1/vehicles/:vin/share
//     in order to grant (or overwrite) a permission for another user,
//  2. GET request to /api/garage/v1/vehicles/:vin/access
//     in order to list the grants of an owned vehicle,
//  3. DELETE request to /api/garage/v1/vehicles/:vin/access/:uid
//     in order to revoke a grant.
//
// All routes require an authenticated user which owns the vehicle.
func Register(r *gin.RouterGroup, access *accessuc.UseCase) {
	rs := &resource{access: access}
	r.POST("vehicles/:vin/share", rs.ShareVehicle)
	r.GET("vehicles/:vin/access", rs.ListVehicleAccess)
	r.DELETE("vehicles/:vin/access/:uid", rs.RevokeVehicleAccess)
}

func (rs *resource) ShareVehicle(c *gin.Context) {
	req := rs.DserShareReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	g, err := rs.access.Share(c, req.VIN, u.ID, req.Email, req.Permission)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (rs *resource) ListVehicleAccess(c *gin.Context) {
	req := rs.DserAccessURI(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	gs, err := rs.access.ListAccess(c, req.VIN, u.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gs)
}

func (rs *resource) RevokeVehicleAccess(c *gin.Context) {
	req := rs.DserRevokeReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	if err := rs.access.Revoke(c, req.VIN, u.ID, req.GranteeID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "access revoked"})
}
