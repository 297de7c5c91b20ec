// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Annotating structs in this package with framework dependent tags
// (e.g., as required by ORM or serialization libraries) is acceptable
// since adding more tags does not complicate definition of a struct,
// but can prevent unnecessary structs duplication.
package model

import (
	"errors"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// User models a registered account. The stored credential is a SCRAM
// hash string; the plaintext password never leaves the signup/login
// use cases.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	IsBanned       bool      `json:"is_banned"`
	CreatedAt      time.Time `json:"created_at"`
}

// DefaultUserRole is assigned to accounts which do not declare a role
// at signup time.
const DefaultUserRole = "driver"

// MinPasswordLen is the minimum acceptable password length.
const MinPasswordLen = 6

// ErrWeakPassword indicates that a password does not satisfy the
// signup policy: at least MinPasswordLen characters, containing at
// least one letter and one digit.
var ErrWeakPassword = errors.New(
	"password must be at least 6 characters and contain a letter and a digit",
)

// ValidatePassword checks the given plaintext password against the
// signup policy, returning ErrWeakPassword on violation.
func ValidatePassword(pass string) error {
	if len(pass) < MinPasswordLen {
		return ErrWeakPassword
	}
	var letter, digit bool
	for _, r := range pass {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}
