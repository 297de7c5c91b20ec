// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports the
// account related use cases:
//  1. Signing up with an email and password,
//  2. Logging in, obtaining an access token.
package usersuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
	"github.com/vastarion/garage/pkg/core/scram"
	"github.com/vastarion/garage/pkg/core/token"
)

// ErrBadCredentials is reported for both an unknown email and a wrong
// password, so a login attempt may not probe which emails are
// registered.
var ErrBadCredentials = errors.New("incorrect email or password")

// UseCase represents the users use case. It holds a database
// connection pool, the users repository instance, the credential
// hasher, and the access token issuer.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  scram.Hasher
	issuer  token.Issuer

	hashIters int
}

// New instantiates a users use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
func New(
	p repo.Pool, u repo.Users, h scram.Hasher, i token.Issuer,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, hasher: h, issuer: i}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.hashIters == 0 {
		uc.hashIters = 15000
	}
	return uc, nil
}

// Signup use case registers a new account for the given email,
// storing a scram hash of the password. The password policy is
// enforced before any round trip; a duplicate email surfaces as a
// conflict error from the repository.
func (users *UseCase) Signup(
	ctx context.Context, email, password string,
) (u *model.User, err error) {
	if err := model.ValidatePassword(password); err != nil {
		return nil, cerr.BadRequest(err)
	}
	hash, err := users.hasher.Hash(password, "", users.hashIters)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Create(ctx, email, hash)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Login use case authenticates the email/password pair and issues an
// access token for the matching account. Unknown emails and wrong
// passwords are deliberately indistinguishable.
func (users *UseCase) Login(
	ctx context.Context, email, password string,
) (tok string, err error) {
	var u *model.User
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		var err error
		u, err = q.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		var ce *cerr.Error
		if errors.As(err, &ce) {
			return "", cerr.Authentication(ErrBadCredentials)
		}
		return "", err
	}
	ok, err := users.hasher.Verify(password, u.HashedPassword)
	if err != nil {
		return "", fmt.Errorf("verifying password hash: %w", err)
	}
	if !ok {
		return "", cerr.Authentication(ErrBadCredentials)
	}
	tok, err = users.issuer.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return tok, nil
}
