// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package servicesrs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/model"
)

type recordsURI struct {
	VIN string `uri:"vin" binding:"required,min=4,max=17"`
}

func (rs *resource) DserRecordsURI(c *gin.Context) *recordsURI {
	req := &recordsURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	return req
}

type rawAddRecordReq struct {
	Description string     `json:"description" binding:"required,min=2"`
	Mileage     int        `json:"mileage" binding:"required,gt=0"`
	Cost        *int       `json:"cost" binding:"omitempty,gte=0"`
	ServiceName string     `json:"service_name" binding:"omitempty"`
	Date        *time.Time `json:"date" binding:"omitempty"`
}

type addRecordReq struct {
	VIN    string
	Record model.ServiceRecord
}

func (rs *resource) DserAddRecordReq(c *gin.Context) *addRecordReq {
	uri := rs.DserRecordsURI(c)
	if uri == nil {
		return nil
	}
	req := &rawAddRecordReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	r := model.ServiceRecord{
		Description: req.Description,
		Mileage:     req.Mileage,
		Cost:        req.Cost,
		ServiceName: req.ServiceName,
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	return &addRecordReq{VIN: uri.VIN, Record: r}
}

type rawDeleteRecordURI struct {
	VIN      string `uri:"vin" binding:"required,min=4,max=17"`
	RecordID string `uri:"rid" binding:"required"`
}

type deleteRecordReq struct {
	VIN      string
	RecordID int64
}

func (rs *resource) DserDeleteRecordReq(c *gin.Context) *deleteRecordReq {
	req := &rawDeleteRecordURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	rid, err := strconv.ParseInt(req.RecordID, 10, 64)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "rid", "Path param rid is not an integer.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &deleteRecordReq{VIN: req.VIN, RecordID: rid}
}
