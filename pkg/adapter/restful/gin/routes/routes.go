// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vastarion/garage/pkg/adapter/config"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/accessrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/servicesrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/usersrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/vastarion/garage/pkg/adapter/metrics"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/authn"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/servicesrs"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/sharingrs"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/usersrs"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/vastarion/garage/pkg/core/repo"
	"github.com/vastarion/garage/pkg/core/usecase/accessuc"
	"github.com/vastarion/garage/pkg/core/usecase/servicesuc"
	"github.com/vastarion/garage/pkg/core/usecase/vehiclesuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like vehiclesuc and each repository package is named like vehiclesrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like vehiclesrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	usersRepo := usersrp.New()
	vehiclesRepo := vehiclesrp.New()
	accessRepo := accessrp.New()
	servicesRepo := servicesrp.New()

	codec, err := c.Auth.NewTokenCodec()
	if err != nil {
		return fmt.Errorf("creating token codec: %w", err)
	}
	usersUseCase, err := c.Usecases.Users.NewUseCase(
		p, usersRepo, c.Auth.NewHasher(), codec,
	)
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	vehiclesUseCase := vehiclesuc.New(p, vehiclesRepo)
	accessUseCase := accessuc.New(p, vehiclesRepo, usersRepo, accessRepo)
	servicesUseCase := servicesuc.New(p, servicesRepo, accessUseCase)

	if *c.Metrics.Enabled {
		m := metrics.New()
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r := e.Group("/api/garage/v1")
	authd := e.Group("/api/garage/v1", authn.New(p, usersRepo, codec))
	usersrs.Register(r, authd, usersUseCase)
	vehiclesrs.Register(authd, vehiclesUseCase)
	sharingrs.Register(authd, accessUseCase)
	servicesrs.Register(authd, servicesUseCase)
	return nil
}
