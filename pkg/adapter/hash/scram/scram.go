// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of SCRAM-SHA-256 and
// SCRAM-SHA-1 mechanisms. See the SHA256 and SHA1 functions for their
// instantiation logic. When a mechanism for a specific underlying
// hash function is instantiated, it can be used for generation of
// credential hash strings in the SCRAM standard format and for
// checking a login password against a previously stored hash string.
// This format is also known as the scram encrypted password format,
// however, it may not be reversed (so no encryption/decryption is
// taking place).
package scram

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) having a fixed underlying hash algorithm.
//
// It implements the github.com/vastarion/garage/pkg/core/scram.Hasher
// interface, so it may be used in the use cases layer without any
// dependency on the actual implementation. This package relies on
// the github.com/xdg-go/scram module for the SCRAM implementation.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string following the standard scram hash
// format, so it can be stored and used later for authentication.
//
// The pass argument must be non-empty. The user and authzID params
// are not asked because they are not used in the hash output. The
// given password will be normalized according to the SASLprep
// profile (defined by RFC 4013) of the stringprep algorithm (which
// is defined by RFC 3454) and any failure in that normalization
// returns an error.
//
// The salt must contain a base64 encoding of the desired salt bytes,
// otherwise, if an empty value is passed, a random salt will be
// generated and used instead. The iters must be at least equal to
// 4096. However, the RFC 7677 recommends to use 15000 or more.
//
// In absence of errors, a hashed string will be returned which
// conforms to the following format.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < 4096:
		return "", fmt.Errorf("iters (%d) is less than 4096", iters)
	}
	if salt == "" {
		saltBytes := make([]byte, m.outLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		s := make([]byte, base64.StdEncoding.EncodedLen(m.outLen))
		base64.StdEncoding.Encode(s, saltBytes)
		salt = string(s)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	h := fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
	return h, nil
}

// Verify recomputes the stored and server keys for pass, using the
// salt and iterations count which are encoded in the given hash
// string, and compares them with the encoded keys in constant time.
// It returns true if pass matches the hash. An error is returned for
// malformed hash strings or for hashes of another mechanism, not for
// mismatching passwords.
func (m *Mechanism) Verify(pass, hash string) (bool, error) {
	name, iters, salt, storedKey, serverKey, err := parse(hash)
	if err != nil {
		return false, fmt.Errorf("parsing hash string: %w", err)
	}
	if name != m.name {
		return false, fmt.Errorf(
			"hash mechanism (%s) does not match %s", name, m.name,
		)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return false, fmt.Errorf("obtaining stored credentials: %w", err)
	}
	ok := hmac.Equal(sc.StoredKey, storedKey) &&
		hmac.Equal(sc.ServerKey, serverKey)
	return ok, nil
}

// parse decodes the standard scram hash format, as produced by the
// Hash method, into its mechanism name, iterations count, base64
// salt, and raw key components.
func parse(hash string) (
	name string, iters int, salt string,
	storedKey, serverKey []byte, err error,
) {
	parts := strings.Split(hash, "$")
	if len(parts) != 3 {
		return "", 0, "", nil, nil, errors.New("expected 3 $-separated parts")
	}
	name = parts[0]
	itersSalt := strings.SplitN(parts[1], ":", 2)
	if len(itersSalt) != 2 {
		return "", 0, "", nil, nil, errors.New("missing iters:salt separator")
	}
	iters, err = strconv.Atoi(itersSalt[0])
	if err != nil {
		return "", 0, "", nil, nil, fmt.Errorf("iterations count: %w", err)
	}
	salt = itersSalt[1]
	keys := strings.SplitN(parts[2], ":", 2)
	if len(keys) != 2 {
		return "", 0, "", nil, nil, errors.New("missing key separator")
	}
	storedKey, err = base64.StdEncoding.DecodeString(keys[0])
	if err != nil {
		return "", 0, "", nil, nil, fmt.Errorf("decoding stored key: %w", err)
	}
	serverKey, err = base64.StdEncoding.DecodeString(keys[1])
	if err != nil {
		return "", 0, "", nil, nil, fmt.Errorf("decoding server key: %w", err)
	}
	return name, iters, salt, storedKey, serverKey, nil
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
