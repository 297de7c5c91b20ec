// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// The garage binary runs the vehicle garage web server and its
// database management sub-commands.
package main

import "github.com/vastarion/garage/cmd/garage/command"

func main() {
	command.Execute()
}
