// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-auth-broker/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/MKhiriev/go-auth-broker/internal/service CredentialService,TokenService,AccountService

// CredentialService owns users, clients and tokens: hashing, constant-time
// comparison and every storage round trip. Nothing is cached.
type CredentialService interface {
	CreateUser(ctx context.Context, username, password string) (models.User, error)
	ValidateUser(ctx context.Context, username, password string) (models.User, error)

	CreateClient(ctx context.Context, name, secret string) (models.Client, error)
	ValidateClient(ctx context.Context, name, secret string) (models.Client, error)
	// EnsureBaseClient upserts the configured base client. It is idempotent.
	EnsureBaseClient(ctx context.Context) (models.Client, error)

	ValidateToken(ctx context.Context, token string) (models.Identity, error)
	GetToken(ctx context.Context, userID, clientID int64, role string) (models.Token, error)
	AddToken(ctx context.Context, userID, clientID int64, role, token string) (models.Token, error)
	RevokeToken(ctx context.Context, token string) error
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// TokenService issues tokens after dual user and client validation and
// resolves sessions for the base client.
type TokenService interface {
	AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (models.Token, error)
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
}

// AccountService registers a base account together with its role accounts.
type AccountService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
}

// AccountServiceWrapper decorates an AccountService, e.g. with validation.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}

// TokenServiceWrapper decorates a TokenService, e.g. with validation.
type TokenServiceWrapper interface {
	Wrap(TokenService) TokenService
}
