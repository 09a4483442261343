// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	args, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Args{}, args)
}

func TestParseResetToken(t *testing.T) {
	args, err := Parse([]string{"--reset-token", "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", args.ResetToken)
}

func TestParseEqualsForm(t *testing.T) {
	args, err := Parse([]string{"--base-url=https://api.example.com", "--reset-token=tok"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", args.BaseURL)
	assert.Equal(t, "tok", args.ResetToken)
}

func TestParseBooleanFlags(t *testing.T) {
	args, err := Parse([]string{"-v"})
	require.NoError(t, err)
	assert.True(t, args.Version)

	args, err = Parse([]string{"--help"})
	require.NoError(t, err)
	assert.True(t, args.Help)
}

func TestParseMissingValue(t *testing.T) {
	_, err := Parse([]string{"--reset-token"})
	assert.Error(t, err)
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--nope"})
	assert.Error(t, err)
}

func TestParseRejectsPositional(t *testing.T) {
	_, err := Parse([]string{"chat"})
	assert.Error(t, err)
}
