// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithHashIterations option configures how many PBKDF2 iterations the
// credential hasher performs at signup time. RFC 7677 recommends at
// least 15000 which is also the default. This option may be passed to
// the New() function.
func WithHashIterations(iters int) Option {
	return func(uc *UseCase) error {
		if iters < 4096 {
			return fmt.Errorf("iters (%d) is less than 4096", iters)
		}
		if uc.hashIters != 0 {
			return errors.New("iterations count is already configured")
		}
		uc.hashIters = iters
		return nil
	}
}
