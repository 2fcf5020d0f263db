// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/adapter"
	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

// AuthClient implements [Client] over an [adapter.AuthService]. The base
// client credentials come from configuration and are used for registration
// and login.
type AuthClient struct {
	auth       adapter.AuthService
	baseClient models.ClientCredentials
	logger     *logger.Logger
}

// NewAuthClient returns an AuthClient that authenticates as the base client
// described by cfg.
func NewAuthClient(auth adapter.AuthService, cfg config.ClientApp, logger *logger.Logger) *AuthClient {
	return &AuthClient{
		auth: auth,
		baseClient: models.ClientCredentials{
			Name:   cfg.BaseClientName,
			Secret: cfg.BaseClientSecret,
		},
		logger: logger,
	}
}

// RegisterUser implements [Client]. Registration and base client
// authentication are two broker calls; when the second fails the user stays
// registered and the error says so.
func (c *AuthClient) RegisterUser(ctx context.Context, username, password string, roles []string) (models.User, string, error) {
	user, err := c.auth.RegisterUser(ctx, models.RegisterRequest{
		Username: username,
		Password: password,
		Roles:    roles,
	})
	if err != nil {
		return models.User{}, "", fmt.Errorf("register user: %w", err)
	}

	token, err := c.auth.AuthenticateClient(ctx, models.AuthenticateClientRequest{
		Credentials:       models.Credentials{Username: username, Password: password},
		ClientCredentials: c.baseClient,
	})
	if err != nil {
		c.logger.Warn().Err(err).Int64("user_id", user.UserID).Msg("user registered but base client authentication failed")
		return user, "", fmt.Errorf("authenticate base client for registered user: %w", err)
	}

	return user, token, nil
}

// Login implements [Client].
func (c *AuthClient) Login(ctx context.Context, username, password string) (models.Session, error) {
	session, err := c.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	return session, nil
}

// Authenticate implements [Client].
func (c *AuthClient) Authenticate(ctx context.Context, creds models.Credentials, client models.ClientCredentials) (string, error) {
	token, err := c.auth.AuthenticateClient(ctx, models.AuthenticateClientRequest{
		Credentials:       creds,
		ClientCredentials: client,
	})
	if err != nil {
		return "", fmt.Errorf("authenticate client %q: %w", client.Name, err)
	}
	return token, nil
}

// WhoAmI implements [Client].
func (c *AuthClient) WhoAmI(ctx context.Context, token string) (models.Identity, error) {
	identity, err := c.auth.Identity(ctx, token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("whoami: %w", err)
	}
	return identity, nil
}

// Revoke implements [Client].
func (c *AuthClient) Revoke(ctx context.Context, token string) error {
	if err := c.auth.RevokeToken(ctx, token); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
