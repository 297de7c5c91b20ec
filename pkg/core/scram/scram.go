// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) based credential hashing.
// For the corresponding implementation, check the adapter layer.
//
// The use cases layer only needs two operations: computing a hash
// string with the standard scram format at signup time, and checking
// a login password against a previously stored hash string. The
// challenge/response conversation parts of the SCRAM protocol family
// (RFC 5802 and RFC 7677) are not needed because tokens, not SCRAM
// conversations, authenticate the subsequent requests.
package scram

// Hasher represents the expectations from a SCRAM hasher
// implementation with a fixed underlying hash function (e.g., SHA1 or
// SHA256). A PBKDF2 computation slows down dictionary attacks as
// detailed in RFC 5802.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// The pass argument must be non-empty. The salt must contain a
	// base64 encoding of the desired salt bytes, otherwise, if an
	// empty value is passed, a random salt will be generated and used
	// instead. The iters must be at least 4096; RFC 7677 recommends
	// 15000 or more.
	Hash(pass, salt string, iters int) (string, error)

	// Verify recomputes the keys for pass using the salt and
	// iterations count which are encoded in the stored hash string
	// and compares them with the stored keys in constant time.
	// It returns true if pass matches the hash. An error is returned
	// only for malformed hash strings, not for mismatching passwords.
	Verify(pass, hash string) (bool, error)
}
