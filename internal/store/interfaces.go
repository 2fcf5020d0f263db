// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-broker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists base and role accounts.
type UserRepository interface {
	// NextUserID atomically allocates a fresh user id.
	NextUserID(ctx context.Context) (int64, error)
	// CreateUsers inserts all given accounts in one transaction. Either every
	// row is stored or none is.
	CreateUsers(ctx context.Context, users []models.User) ([]models.User, error)
	// FindUserByUsername returns [ErrUserNotFound] when no account matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// ClientRepository persists client applications.
type ClientRepository interface {
	// SaveClient inserts the client, or replaces the secret hash of an
	// existing client with the same name.
	SaveClient(ctx context.Context, client models.Client) (models.Client, error)
	// FindClientByName returns [ErrClientNotFound] when no client matches.
	FindClientByName(ctx context.Context, name string) (models.Client, error)
}

// TokenRepository persists issued tokens.
type TokenRepository interface {
	// AddToken returns [ErrTokenAlreadyIssued] when the grant already holds a
	// token.
	AddToken(ctx context.Context, token models.Token) (models.Token, error)
	FindToken(ctx context.Context, token string) (models.Token, error)
	FindTokenByGrant(ctx context.Context, userID, clientID int64, role string) (models.Token, error)
	DeleteToken(ctx context.Context, token string) error
	// DeleteExpiredTokens removes tokens created before the given instant and
	// reports how many were removed.
	DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error)
}
