// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sharingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/model"
)

type accessURI struct {
	VIN string `uri:"vin" binding:"required,min=4,max=17"`
}

func (rs *resource) DserAccessURI(c *gin.Context) *accessURI {
	req := &accessURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	return req
}

type rawShareReq struct {
	Email      string `json:"email" binding:"required,email"`
	Permission string `json:"permission" binding:"required"`
}

type shareReq struct {
	VIN        string
	Email      string
	Permission model.Permission
}

func (rs *resource) DserShareReq(c *gin.Context) *shareReq {
	uri := rs.DserAccessURI(c)
	if uri == nil {
		return nil
	}
	req := &rawShareReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	p, err := model.ParsePermission(req.Permission)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "permission", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &shareReq{VIN: uri.VIN, Email: req.Email, Permission: p}
}

type rawRevokeURI struct {
	VIN       string `uri:"vin" binding:"required,min=4,max=17"`
	GranteeID string `uri:"uid" binding:"required,uuid"`
}

type revokeReq struct {
	VIN       string
	GranteeID uuid.UUID
}

func (rs *resource) DserRevokeReq(c *gin.Context) *revokeReq {
	req := &rawRevokeURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	gid, err := uuid.Parse(req.GranteeID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "uid", "Path param uid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &revokeReq{VIN: req.VIN, GranteeID: gid}
}
