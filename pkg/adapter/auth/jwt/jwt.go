// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt implements the core token.Issuer and token.Verifier
// interfaces with HS256-signed JSON Web Tokens. The signing secret
// and token lifetime come from the configuration settings; no package
// level state is kept, so separate Codec instances (e.g., in parallel
// tests) cannot interfere.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/core/token"
)

// Issuer is the iss claim value of every issued token.
const Issuer = "garage"

// Codec issues and verifies HS256-signed access tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New instantiates a Codec with the given signing secret and token
// lifetime, validating both.
func New(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret must be non-empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl (%v) is not positive", ttl)
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token asserting the given user identity, expiring
// after the configured lifetime.
func (c *Codec) Issue(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and registered claims and
// extracts the verified user identity. Every rejection reports
// token.ErrInvalidToken, so callers cannot distinguish expired from
// tampered tokens.
func (c *Codec) Verify(tok string) (uuid.UUID, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return uuid.Nil, token.ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		tok, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, token.ErrInvalidToken
			}
			return c.secret, nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, token.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, token.ErrInvalidToken
	}
	return userID, nil
}
