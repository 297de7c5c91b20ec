// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vastarion/garage/internal/test/dbcontainer"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/usersrp"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/repo"
	"gorm.io/gorm"
)

// gormDB instantiates only while the Queryer constraint itself
// declares the GORM method, as the repository query functions expect.
func gormDB[Q postgres.Queryer](ctx context.Context, q Q) *gorm.DB {
	return q.GORM(ctx)
}

var (
	_           = gormDB[*postgres.Conn]
	_           = gormDB[*postgres.Tx]
	_ repo.Pool = (*postgres.Pool)(nil)
)

type IntegrationPostgresTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
}

func TestIntegrationPostgresTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationPostgresTestSuite{
		Ctx:  ctx,
		Pool: pool,
	})
}

// TestLookupErrorKinds distinguishes a failing statement from an
// empty result set. Querying a table which does not exist yet must
// surface the database error itself; only a successful query with no
// matching row maps to the not-found category.
func (ipts *IntegrationPostgresTestSuite) TestLookupErrorKinds() {
	err := ipts.Pool.Conn(
		ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
			cc := c.(*postgres.Conn)

			_, err := usersrp.GetByEmail(ctx, cc, "nobody@example.org")
			ipts.Error(err, "querying an absent table must fail")
			var ce *cerr.Error
			ipts.False(
				errors.As(err, &ce),
				"database failures must not map to an HTTP category",
			)

			ipts.Require().NoError(usersrp.Migrate(ctx, cc))
			_, err = usersrp.GetByEmail(ctx, cc, "nobody@example.org")
			ipts.Require().ErrorAs(err, &ce)
			ipts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
			return nil
		},
	)
	ipts.NoError(err)
}
