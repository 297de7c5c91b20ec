// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the account
// related REST APIs to be accepted and delegated to the users use
// cases respectively.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/authn"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/garage/v1/auth/signup
//     in order to register a new account,
//  2. POST request to /api/garage/v1/auth/login
//     in order to obtain an access token,
//  3. GET request to /api/garage/v1/users/me
//     in order to fetch the authenticated account.
//
// The first two routes are registered on the public r group, while
// the profile route goes to the authd group which runs the
// authentication middleware first.
func Register(r, authd *gin.RouterGroup, users *usersuc.UseCase) {
	rs := &resource{users: users}
	r.POST("auth/signup", rs.Signup)
	r.POST("auth/login", rs.Login)
	authd.GET("users/me", rs.Profile)
}

func (rs *resource) Signup(c *gin.Context) {
	req := rs.DserSignupReq(c)
	if req == nil {
		return
	}
	u, err := rs.users.Signup(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	tok, err := rs.users.Login(c, req.Username, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

func (rs *resource) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, authn.CurrentUser(c))
}
