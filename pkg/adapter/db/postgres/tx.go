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

// Tx is a single database transaction, running statements one at a
// time with the isolation level which the server selects by default
// (READ COMMITTED on PostgreSQL). It is not safe for concurrent use.
// Tx embeds a *gorm.DB, so repository packages, which are allowed to
// depend on frameworks, can use GORM directly through it.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args in this transaction and reports the number
// of affected rows. When args are present, sql is prepared and must
// contain a single statement; without args, multiple semicolon
// separated statements are accepted. Parameters are numbered $1, $2,
// and so on, although GORM also resolves the ? and @name forms.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Query runs a single sql statement with args in this transaction and
// returns its result set. The transaction may not run another
// statement until the returned Rows instance is closed.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := tx.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, err
}

// IsTx marks Tx as a transaction, keeping connection types from
// implementing the repo.Tx interface by accident.
func (tx *Tx) IsTx() {
}

// GORM exposes the embedded *gorm.DB bound to ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
