// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vastarion/garage/pkg/core/model"
)

func TestParsePermission(t *testing.T) {
	for _, label := range []string{"viewer", "editor", "driver"} {
		p, err := model.ParsePermission(label)
		assert.NoError(t, err, "label %q must be known", label)
		assert.Equal(t, model.Permission(label), p)
	}
	for _, label := range []string{"", "owner", "Viewer", "admin"} {
		_, err := model.ParsePermission(label)
		assert.ErrorIs(
			t, err, model.ErrUnknownPermission,
			"label %q must be rejected", label,
		)
	}
}

func TestPermissionIn(t *testing.T) {
	set := []model.Permission{
		model.PermissionEditor, model.PermissionDriver,
	}
	assert.True(t, model.PermissionEditor.In(set))
	assert.True(t, model.PermissionDriver.In(set))
	assert.False(t, model.PermissionViewer.In(set))
	assert.False(t, model.PermissionViewer.In(nil))
}

func TestPermissionRole(t *testing.T) {
	assert.Equal(t, model.Role("editor"), model.PermissionEditor.Role())
	assert.NotEqual(t, model.RoleOwner, model.PermissionDriver.Role())
}
