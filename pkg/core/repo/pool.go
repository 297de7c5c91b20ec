// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ConnHandler runs a unit of work on a borrowed connection.
type ConnHandler func(context.Context, Conn) error

// Pool hands out database connections, one per unit of work, and can
// be closed when the program shuts down.
type Pool interface {
	// Conn takes a connection, passes it to handler, and releases
	// it when handler returns.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close closes the pool and all of its connections.
	Close() error
}
