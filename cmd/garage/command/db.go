// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vastarion/garage/pkg/adapter/config"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/accessrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/servicesrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/usersrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/vastarion/garage/pkg/core/log"
	"github.com/vastarion/garage/pkg/core/repo"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates all tables,
indices, and constraints of the current schema.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	Long: `Create all tables, indices, and constraints of the current
database schema. Running init against an existing schema is safe; it
only adds the missing pieces and never drops columns or data.`,
	RunE: initSchema,
}

func initSchema(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, cc repo.Conn) error {
		return cc.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return migrate(ctx, tx.(*postgres.Tx))
		})
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "database schema is initialized")
	return nil
}

// migrate creates the missing tables, indices, and constraints of all
// repositories using the q queryer. The users and vehicles tables are
// migrated first since the grant and service record tables refer to
// them.
func migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	if err := usersrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating users: %w", err)
	}
	if err := vehiclesrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating vehicles: %w", err)
	}
	if err := accessrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating vehicle accesses: %w", err)
	}
	if err := servicesrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating service records: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
}
