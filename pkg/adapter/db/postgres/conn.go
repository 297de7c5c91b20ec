// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/vastarion/garage/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is a single database connection. Like Tx, it embeds a *gorm.DB
// and runs one statement at a time; unlike Tx, consecutive statements
// see each other's effects immediately and are not atomic as a group.
type Conn struct {
	*gorm.DB
}

// TxHandler runs a unit of work in the tx transaction.
type TxHandler = repo.TxHandler

// Tx begins a transaction on this connection and passes it to f.
// The transaction is committed when f returns nil and rolled back
// when it returns an error or panics; rollback errors are joined
// into the returned error rather than swallowed.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	tx := c.DB.WithContext(ctx).Begin()
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = tx.Rollback().Error
			if err == nil {
				err = fmt.Errorf("panicked: %v", r)
				return
			}
			err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, err2)
				return
			}
			err = fmt.Errorf("handler: %w", err)
			return
		}
		err = tx.Commit().Error
		if err != nil {
			err = fmt.Errorf("commit: %w", err)
		}
	}()
	tt := &Tx{DB: tx}
	return f(ctx, tt)
}

// Exec runs sql with args on this connection, reporting the number of
// affected rows. See Tx.Exec for the statement and parameter rules.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := c.DB.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Query runs a single sql statement with args and returns its result
// set. No other statement may run on this connection until the
// returned Rows instance is closed.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := c.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, err
}

// IsConn marks Conn as a connection, keeping transaction types from
// implementing the repo.Conn interface by accident.
func (c *Conn) IsConn() {
}

// GORM exposes the embedded *gorm.DB bound to ctx.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
