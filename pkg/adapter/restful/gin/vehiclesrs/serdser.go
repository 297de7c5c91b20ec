// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/model"
)

type rawCreateVehicleReq struct {
	VIN     string `json:"vin" binding:"required,min=4,max=17"`
	Brand   string `json:"brand" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year" binding:"required"`
	Mileage int    `json:"mileage" binding:"omitempty,gte=0"`
	Color   string `json:"color" binding:"omitempty"`
}

type createVehicleReq struct {
	Vehicle model.Vehicle
}

func (rs *resource) DserCreateVehicleReq(c *gin.Context) *createVehicleReq {
	req := &rawCreateVehicleReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return &createVehicleReq{
		Vehicle: model.Vehicle{
			VIN:     req.VIN,
			Brand:   req.Brand,
			Model:   req.Model,
			Year:    req.Year,
			Mileage: req.Mileage,
			Color:   req.Color,
		},
	}
}

type rawListVehiclesReq struct {
	Brand string `form:"brand" binding:"omitempty"`
	Sort  string `form:"sort" binding:"omitempty,oneof=year -year"`
	Skip  int    `form:"skip" binding:"omitempty,gte=0"`
	Limit int    `form:"limit" binding:"omitempty,gte=0"`
}

type listVehiclesReq struct {
	Filter model.VehicleFilter
}

func (rs *resource) DserListVehiclesReq(c *gin.Context) *listVehiclesReq {
	req := &rawListVehiclesReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return &listVehiclesReq{
		Filter: model.VehicleFilter{
			Brand: req.Brand,
			Sort:  req.Sort,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	}
}

type vehicleURI struct {
	VIN string `uri:"vin" binding:"required,min=4,max=17"`
}

func (rs *resource) DserVehicleURI(c *gin.Context) *vehicleURI {
	req := &vehicleURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	return req
}

type rawUpdateVehicleReq struct {
	Brand   *string `json:"brand" binding:"omitempty"`
	Model   *string `json:"model" binding:"omitempty"`
	Year    *int    `json:"year" binding:"omitempty"`
	Mileage *int    `json:"mileage" binding:"omitempty,gte=0"`
	Color   *string `json:"color" binding:"omitempty"`
}

type updateVehicleReq struct {
	VIN    string
	Update model.VehicleUpdate
}

func (rs *resource) DserUpdateVehicleReq(c *gin.Context) *updateVehicleReq {
	uri := rs.DserVehicleURI(c)
	if uri == nil {
		return nil
	}
	req := &rawUpdateVehicleReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return &updateVehicleReq{
		VIN: uri.VIN,
		Update: model.VehicleUpdate{
			Brand:   req.Brand,
			Model:   req.Model,
			Year:    req.Year,
			Mileage: req.Mileage,
			Color:   req.Color,
		},
	}
}
