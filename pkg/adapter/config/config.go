// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads and validates the YAML configuration settings
// which are required by different parts of the project, such as
// adapters or use cases. It is preferred to implement Config with
// primitive fields or other structs which are defined locally, not
// models or structs which are defined in lower layers, so other layers
// can change freely without touching the configuration file format.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/vastarion/garage/pkg/adapter/auth/jwt"
	"github.com/vastarion/garage/pkg/adapter/config/settings"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/adapter/hash/scram"
	"github.com/vastarion/garage/pkg/adapter/restful/gin"
	"github.com/vastarion/garage/pkg/core/repo"
	scrami "github.com/vastarion/garage/pkg/core/scram"
	"github.com/vastarion/garage/pkg/core/token"
	"github.com/vastarion/garage/pkg/core/usecase/usersuc"
	"gopkg.in/yaml.v3"
)

// SecretEnvVar is the environment variable which, when set, overrides
// the auth.secret setting, so the signing secret may be kept out of
// the configuration file.
const SecretEnvVar = "GARAGE_AUTH_SECRET"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Auth     Auth     // credential hashing and token signing settings
	Metrics  Metrics  // prometheus instrumentation settings
	Usecases Usecases // configuration settings for supported use cases
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like garage
	Role string // database role (user) name
	Pass string // password of the database role
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	return postgres.NewPool(ctx, d.ConnectionURL())
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value, having
// the postgresql scheme.
func (d Database) ConnectionURL() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.Role, d.Pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String()
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to replace some zero values with their expected default values.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" || d.Role == "" {
		return fmt.Errorf(
			"database name (%q) and role (%q) must be non-empty",
			d.Name, d.Role,
		)
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized, filling the missing items with their
// default values during the ValidateAndNormalize call.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Auth contains the credential hashing and access token settings.
type Auth struct {
	// Secret is the HS256 signing secret of the issued access tokens.
	// It may be overridden (or provided entirely) by the environment
	// variable which is named by the SecretEnvVar constant.
	Secret string `yaml:"secret,omitempty"`

	// TokenTTL bounds the lifetime of issued access tokens.
	// A nil value selects the 30m default.
	TokenTTL *settings.Duration `yaml:"token-ttl"`

	// HashMethod specifies the credentials hashing method name which
	// indicates how passwords are hashed before being stored, so they
	// may be used by the login operation successfully.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	HashMethod string `yaml:"hash-method,omitempty"`

	// hasher is instantiated based on the HashMethod by the
	// ValidateAndNormalize method.
	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize validates the auth settings and returns an
// error if they were not acceptable. The signing secret is taken from
// the SecretEnvVar environment variable with precedence over the
// configuration file contents.
func (a *Auth) ValidateAndNormalize() error {
	if s, found := os.LookupEnv(SecretEnvVar); found {
		a.Secret = s
	}
	if a.Secret == "" {
		return fmt.Errorf(
			"auth secret must be set (e.g., by the %s environment variable)",
			SecretEnvVar,
		)
	}
	if a.TokenTTL == nil {
		ttl := settings.Duration(30 * time.Minute)
		a.TokenTTL = &ttl
	}
	switch hm := a.HashMethod; hm {
	case "scram-sha-1":
		a.hasher = scram.SHA1()
	case "":
		a.HashMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		a.hasher = scram.SHA256()
	default:
		return fmt.Errorf("unsupported credentials hashing method: %q", hm)
	}
	return nil
}

// NewHasher returns the credentials hasher which is instantiated based
// on the auth settings. The ValidateAndNormalize method is expected to
// be called beforehand.
func (a Auth) NewHasher() scrami.Hasher {
	return a.hasher
}

// NewTokenCodec instantiates the access token issuer/verifier based on
// the auth settings.
func (a Auth) NewTokenCodec() (*jwt.Codec, error) {
	return jwt.New(a.Secret, time.Duration(*a.TokenTTL))
}

// Metrics contains the prometheus instrumentation settings.
// The Enabled field is defined as a pointer, so it is possible to
// detect if it is or is not initialized.
type Metrics struct {
	Enabled *bool // Whether to measure requests and serve /metrics
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Users Users // users use cases related settings
}

// Users contains the configuration settings for the users use cases.
type Users struct {
	// HashIterations indicates how many PBKDF2 iterations the
	// credentials hasher performs at signup time.
	// A nil value indicates that the iterations count is left
	// uninitialized, so the use cases layer may select a default value.
	HashIterations *int `yaml:"hash-iterations,omitempty"`
}

// NewUseCase instantiates a new users use case based on the settings
// in the `u` struct.
func (u Users) NewUseCase(
	p repo.Pool, r repo.Users, h scrami.Hasher, i token.Issuer,
) (*usersuc.UseCase, error) {
	opts := make([]usersuc.Option, 0, 1)
	if u.HashIterations != nil {
		opts = append(opts, usersuc.WithHashIterations(*u.HashIterations))
	}
	return usersuc.New(p, r, h, i, opts...)
}

// Load reads the configuration file at the given path and parses a
// Config instance out of it using the LoadData function.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q config file: %w", path, err)
	}
	c, err := LoadData(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q config file: %w", path, err)
	}
	return c, nil
}

// LoadData unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized
// in order to ensure that provided settings are acceptable.
//
// Settings which should be overridden by environment variables are
// replaced during that normalization, after parsing the data byte
// slice, so the environment takes precedence over the file contents.
func LoadData(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	settings.Nil2Zero(&c.Metrics.Enabled)
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	return nil
}
