// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Status-level errors. Every non-2xx response wraps exactly one of them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// Errors recovered from the response message. They are wrapped together with
// the status-level error.
var (
	ErrInvalidData           = errors.New("invalid data provided")
	ErrMissingToken          = errors.New("missing token")
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNoTokenIssued         = errors.New("no token issued")
	ErrRoleNotPermitted      = errors.New("role not permitted")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// ErrEmptyToken is returned before any request is sent when a gated call is
// made without a token.
var ErrEmptyToken = errors.New("empty token")
