// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is an open database transaction, running its statements one at a
// time with the isolation level the server picks by default. It is not
// safe for concurrent use. Statement execution goes through the
// embedded Queryer interface.
type Tx interface {
	Queryer

	// IsTx marks transactions, so a Conn cannot satisfy this
	// interface by accident.
	IsTx()
}
