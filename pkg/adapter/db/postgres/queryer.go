// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/vastarion/garage/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic query functions of the repository
// packages to a *Conn or a *Tx. Beyond the raw repo.Queryer methods,
// it exposes the GORM method, so queries can be built with the GORM
// API on either a connection or a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns the embedded *gorm.DB bound to ctx.
	GORM(ctx context.Context) *gorm.DB
}
