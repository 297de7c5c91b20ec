// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package token exports the access-token interfaces which the use
// cases and the REST adapter consume without depending on the actual
// token format. The adapter layer implements them with signed JWTs,
// but any verifiable-identity mechanism satisfies the contract.
package token

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken indicates that a presented token failed
// verification, without telling why (expired, tampered, malformed).
var ErrInvalidToken = errors.New("invalid token")

// Issuer creates an access token asserting the given user identity
// for a bounded time.
type Issuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Verifier checks an access token and extracts the verified user
// identity, returning ErrInvalidToken for every rejection.
type Verifier interface {
	Verify(tok string) (uuid.UUID, error)
}
