// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrs

import (
	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
)

type signupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// loginReq follows the OAuth2 password flow form field names, so the
// credentials are posted as username/password even though the username
// is an email address.
type loginReq struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (rs *resource) DserSignupReq(c *gin.Context) *signupReq {
	req := &signupReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserLoginReq(c *gin.Context) *loginReq {
	req := &loginReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}
