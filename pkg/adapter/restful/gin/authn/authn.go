// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authn provides the bearer token authentication middleware.
// It verifies the Authorization header, loads the corresponding user
// account, and stores it in the request context for the downstream
// handlers. Requests without a valid token are rejected with a 401
// status code before any resource handler runs; banned accounts are
// authenticated but rejected with a 403 status code.
package authn

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/serdser"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
	"github.com/vastarion/garage/pkg/core/token"
)

// userKey is the gin context key holding the authenticated *model.User.
const userKey = "authn.user"

// ErrBannedUser rejects requests of authenticated but banned accounts.
var ErrBannedUser = errors.New("account is banned")

// New creates the authentication middleware. Each request must carry
// an "Authorization: Bearer <token>" header; its token is verified by
// the v verifier and the asserted user account is loaded through the
// u repository. Accounts which were deleted after the token was issued
// are rejected the same as invalid tokens.
func New(p repo.Pool, u repo.Users, v token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, prefix) {
			abort(c, cerr.Authentication(token.ErrInvalidToken))
			return
		}
		userID, err := v.Verify(h[len(prefix):])
		if err != nil {
			abort(c, cerr.Authentication(err))
			return
		}
		var user *model.User
		err = p.Conn(c, func(ctx context.Context, conn repo.Conn) error {
			user, err = u.Conn(conn).GetByID(ctx, userID)
			return err
		})
		if err != nil {
			var ce *cerr.Error
			if errors.As(err, &ce) {
				err = cerr.Authentication(token.ErrInvalidToken)
			}
			abort(c, err)
			return
		}
		if user.IsBanned {
			abort(c, cerr.Authorization(ErrBannedUser))
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	serdser.SerErr(c, err)
	c.Abort()
}

// CurrentUser returns the authenticated user of this request. It must
// only be called by handlers which are registered behind the New
// middleware.
func CurrentUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}
