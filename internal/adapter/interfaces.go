// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for talking to the
// auth broker.
//
// The primary abstraction is [AuthService], which decouples the client from
// the underlying transport. The package ships an HTTP/REST implementation
// ([NewHTTPAuthAdapter]) and an in-process one ([NewLocalAuthAdapter]) that
// calls the broker services directly.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// response messages by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrConflict] for 409,
// [ErrInvalidCredentials] for a rejected login).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-broker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AuthService defines transport-agnostic communication with the broker.
// Implementations are responsible for serialisation, attaching the token to
// gated calls, and mapping transport-level errors to the sentinel values
// defined in this package.
type AuthService interface {
	// RegisterUser creates a base account and the requested role accounts.
	// The returned user carries the plaintext passwords of the role accounts.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// AuthenticateClient validates the user and the client and returns the
	// token issued to the client for that user.
	AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (string, error)

	// Login returns the session of the base client for the user.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Identity resolves token to the identity the broker attaches to gated
	// requests.
	Identity(ctx context.Context, token string) (models.Identity, error)

	// RevokeToken deletes token so that it is no longer accepted.
	RevokeToken(ctx context.Context, token string) error
}
