// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// TokenBytes is the entropy of an issued token: 256 bits.
	TokenBytes = 32

	// PasswordBytes is the entropy of a generated role-account password.
	PasswordBytes = 18

	// minRandomBytes is the 128-bit floor for any opaque credential.
	minRandomBytes = 16
)

// ErrNotEnoughEntropy is returned when a caller asks for a random string
// shorter than 128 bits.
var ErrNotEnoughEntropy = errors.New("requested random value is shorter than 128 bits")

// RandomString reads n bytes from crypto/rand and returns them encoded with
// unpadded base64url, so the value is safe in query strings and headers.
//
// Returns [ErrNotEnoughEntropy] if n is below 16 bytes.
func RandomString(n int) (string, error) {
	if n < minRandomBytes {
		return "", ErrNotEnoughEntropy
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateToken returns a fresh opaque token value with [TokenBytes] of
// entropy.
func GenerateToken() (string, error) {
	return RandomString(TokenBytes)
}

// GeneratePassword returns a fresh password for a role account.
func GeneratePassword() (string, error) {
	return RandomString(PasswordBytes)
}
