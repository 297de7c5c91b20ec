// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the garage
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database schema creation.
//
//	./garage [-c /path/of/main/config.yaml]     # start web server
//	./garage db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vastarion/garage/pkg/adapter/config"
	"github.com/vastarion/garage/pkg/adapter/restful/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/routes"
	"github.com/vastarion/garage/pkg/core/log"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "A vehicle garage management web service",
	Long: `A vehicle garage management web service which tracks each
user's vehicles and their service history, and lets an owner delegate
a scoped level of access (viewer, editor, or driver) over a vehicle to
other registered users. Ownership is the unconditional access path,
while every other access is decided by the granted permission labels.
The REST API is served by the Gin Gonic web framework on top of a
PostgreSQL database which is accessed through GORM and Pgx.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
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
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(
		ctx, "starting the garage web server",
		slog.String("config", cfgPath),
	)
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
