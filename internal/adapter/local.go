// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/models"
)

type localAuthAdapter struct {
	services *service.Services
}

// NewLocalAuthAdapter returns an [AuthService] that calls the broker services
// in the same process. Errors are mapped to the same sentinels the HTTP
// adapter returns.
func NewLocalAuthAdapter(services *service.Services) AuthService {
	return &localAuthAdapter{services: services}
}

func (l *localAuthAdapter) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	user, err := l.services.AccountService.RegisterUser(ctx, req)
	if err != nil {
		return models.User{}, mapServiceError(err)
	}
	return user, nil
}

func (l *localAuthAdapter) AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (string, error) {
	token, err := l.services.TokenService.AuthenticateClient(ctx, req)
	if err != nil {
		return "", mapServiceError(err)
	}
	return token.Token, nil
}

func (l *localAuthAdapter) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	session, err := l.services.TokenService.Login(ctx, creds)
	if err != nil {
		return models.Session{}, mapServiceError(err)
	}
	return session, nil
}

func (l *localAuthAdapter) Identity(ctx context.Context, token string) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ErrEmptyToken
	}

	identity, err := l.services.CredentialService.ValidateToken(ctx, token)
	if err != nil {
		return models.Identity{}, mapServiceError(err)
	}
	return identity, nil
}

func (l *localAuthAdapter) RevokeToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	return mapServiceError(l.services.CredentialService.RevokeToken(ctx, token))
}
