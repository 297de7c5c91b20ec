// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package servicesrs realizes the service-records resource, allowing
// the vehicle service history REST APIs to be accepted and delegated
// to the service-history use cases respectively. Authorization of the
// acting user against the vehicle is decided inside the use cases
// layer, not here.
package servicesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/authn"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/usecase/servicesuc"
)

type resource struct {
	services *servicesuc.UseCase
}

// Register instantiates a resource adapting the service-history use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/garage/v1/vehicles/:vin/service-records
//     in order to append a record to the vehicle's history,
//  2. GET request to /api/garage/v1/vehicles/:vin/service-records
//     in order to list the vehicle's history,
//  3. DELETE request to
//     /api/garage/v1/vehicles/:vin/service-records/:rid
//     in order to remove one record.
//
// All routes require an authenticated user.
func Register(r *gin.RouterGroup, services *servicesuc.UseCase) {
	rs := &resource{services: services}
	r.POST("vehicles/:vin/service-records", rs.AddServiceRecord)
	r.GET("vehicles/:vin/service-records", rs.ListServiceRecords)
	r.DELETE("vehicles/:vin/service-records/:rid", rs.DeleteServiceRecord)
}

func (rs *resource) AddServiceRecord(c *gin.Context) {
	req := rs.DserAddRecordReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	r, err := rs.services.Add(c, req.VIN, u.ID, req.Record)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (rs *resource) ListServiceRecords(c *gin.Context) {
	req := rs.DserRecordsURI(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	records, err := rs.services.List(c, req.VIN, u.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (rs *resource) DeleteServiceRecord(c *gin.Context) {
	req := rs.DserDeleteRecordReq(c)
	if req == nil {
		return
	}
	u := authn.CurrentUser(c)
	if err := rs.services.Delete(c, req.VIN, u.ID, req.RecordID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "service record deleted"})
}
