// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is the longest password or client secret bcrypt accepts.
const MaxSecretBytes = 72

var (
	// ErrEmptySecret is returned when an empty password or client secret is
	// passed to [PasswordHasher.Hash].
	ErrEmptySecret = errors.New("empty secret")

	// ErrSecretTooLong is returned when a secret exceeds [MaxSecretBytes].
	ErrSecretTooLong = errors.New("secret is longer than 72 bytes")
)

// PasswordHasher hashes and verifies passwords and client secrets with
// bcrypt. The zero value is not usable; construct it with [NewPasswordHasher].
type PasswordHasher struct {
	cost int

	// dummyHash is compared against when the looked-up identity does not
	// exist, so that "unknown user" costs the same time as "wrong password".
	dummyHash []byte
}

// NewPasswordHasher returns a hasher using the given bcrypt cost. A cost
// outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// error is impossible here: the input is short and the cost is valid
	dummy, _ := bcrypt.GenerateFromPassword([]byte("go-auth-broker-dummy-password"), cost)

	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Hash returns the salted bcrypt hash of secret.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if len(secret) > MaxSecretBytes {
		return "", ErrSecretTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret: %w", err)
	}

	return string(hash), nil
}

// Compare reports whether secret matches hash. The comparison is constant
// time with respect to the secret.
func (h *PasswordHasher) Compare(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// CompareDummy burns the same amount of work as [PasswordHasher.Compare]
// and always reports false.
func (h *PasswordHasher) CompareDummy(secret string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(secret))
	return false
}
