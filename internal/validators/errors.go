// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername     = errors.New("username is required")
	ErrInvalidUsername   = errors.New("username must not contain whitespace or start with '@'")
	ErrEmptyPassword     = errors.New("password is required")
	ErrPasswordTooLong   = errors.New("password must not be longer than 72 bytes")
	ErrEmptyRole         = errors.New("role must not be empty")
	ErrInvalidRole       = errors.New("role must not contain whitespace or '@'")
	ErrReservedRole      = errors.New("role \"client\" is reserved for base accounts")
	ErrDuplicateRole     = errors.New("roles must be unique")
	ErrEmptyClientName   = errors.New("client name is required")
	ErrEmptyClientSecret = errors.New("client secret is required")
	ErrSecretTooLong     = errors.New("client secret must not be longer than 72 bytes")
)
