// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString_Length(t *testing.T) {
	s, err := RandomString(32)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestRandomString_RejectsLowEntropy(t *testing.T) {
	_, err := RandomString(15)
	assert.ErrorIs(t, err, ErrNotEnoughEntropy)
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		tok, err := GenerateToken()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token generated")
		seen[tok] = struct{}{}
	}
}

func TestGenerateToken_URLSafe(t *testing.T) {
	tok, err := GenerateToken()
	require.NoError(t, err)
	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")
	assert.NotContains(t, tok, "=")
}

func TestGeneratePassword_NotEmpty(t *testing.T) {
	p, err := GeneratePassword()
	require.NoError(t, err)
	assert.Len(t, p, 24)
}
