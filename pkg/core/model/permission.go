// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// Permission is a delegated-access label which a vehicle owner may
// grant to another user. The labels form an unordered set; there is
// no ranking between them. Each operation which consults a grant
// declares its own set of acceptable labels, so one label is never
// implicitly "stronger" than another.
type Permission string

// Valid values for the Permission label set.
const (
	PermissionViewer Permission = "viewer"
	PermissionEditor Permission = "editor"
	PermissionDriver Permission = "driver"
)

// ErrUnknownPermission indicates that a given string may not be parsed
// as a valid/known permission label.
var ErrUnknownPermission = errors.New("unknown permission label")

// Validate returns nil if the Permission value is one of the known
// labels and ErrUnknownPermission otherwise.
func (p Permission) Validate() error {
	switch p {
	case PermissionViewer, PermissionEditor, PermissionDriver:
		return nil
	default:
		return ErrUnknownPermission
	}
}

// In reports whether p is a member of the given acceptable label set.
func (p Permission) In(perms []Permission) bool {
	for _, q := range perms {
		if p == q {
			return true
		}
	}
	return false
}

// ParsePermission parses the given string as a Permission label,
// helping to deserialize it when reading a REST API request.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Role describes at which capacity a user may access a vehicle, as
// computed by the access resolver. It is either RoleOwner or the
// label of the matching grant.
type Role string

// RoleOwner is the role of a vehicle's owner. Ownership always grants
// access, independent of any acceptable-permission set.
const RoleOwner Role = "owner"

// Role converts a granted permission label to the equivalent access
// role.
func (p Permission) Role() Role {
	return Role(p)
}
