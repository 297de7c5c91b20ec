// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastarion/garage/pkg/adapter/config/settings"
)

func TestDurationUnmarshalText(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("90m")))
	assert.Equal(t, settings.Duration(90*time.Minute), d)

	err := d.UnmarshalText([]byte("ninety minutes"))
	assert.Error(t, err)
	assert.Equal(
		t, settings.Duration(90*time.Minute), d,
		"a failed decoding must not update the receiver",
	)
}

func TestDurationMarshal(t *testing.T) {
	var nilDuration *settings.Duration
	assert.Nil(t, nilDuration.Marshal())

	for _, tc := range []struct {
		d        time.Duration
		expected string
	}{
		{d: 90 * time.Minute, expected: "1h30m"},
		{d: 2 * time.Hour, expected: "2h"},
		{d: 2*time.Hour + 3*time.Minute + 4*time.Second, expected: "2h3m4s"},
		{d: 45 * time.Second, expected: "45s"},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			d := settings.Duration(tc.d)
			s := d.Marshal()
			require.NotNil(t, s)
			assert.Equal(t, tc.expected, *s)

			b, err := d.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(b))
		})
	}
}

func TestDurationLogValue(t *testing.T) {
	var nilDuration *settings.Duration
	assert.Equal(
		t, slog.StringValue("nil-duration"), nilDuration.LogValue(),
	)
	d := settings.Duration(time.Minute)
	assert.Equal(t, slog.DurationValue(time.Minute), d.LogValue())
}
