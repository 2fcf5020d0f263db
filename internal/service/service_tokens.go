// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

// tokenService is the concrete implementation of TokenService.
// It composes CredentialService calls sequentially and stops at the first
// failing step; nothing is retried.
type tokenService struct {
	credentials CredentialService

	// baseClientName and baseClientSecret are the credentials of the
	// well-known client used by Login.
	baseClientName   string
	baseClientSecret string

	// generateToken is utils.GenerateToken outside of tests.
	generateToken func() (string, error)

	logger *logger.Logger
}

// NewTokenService constructs a TokenService on top of credentials.
func NewTokenService(credentials CredentialService, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		credentials:      credentials,
		baseClientName:   cfg.BaseClientName,
		baseClientSecret: cfg.BaseClientSecret,
		generateToken:    utils.GenerateToken,
		logger:           logger,
	}
}

// AuthenticateClient validates the user and then the client, and issues a
// token bound to (user, client, role).
//
// When the grant already holds a live token, that token is returned instead
// of a new one. Returns ErrInvalidCredentials for any user or client
// mismatch.
func (t *tokenService) AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := t.credentials.ValidateUser(ctx, req.Username, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.AuthenticateClient").Msg("user validation failed")
		return models.Token{}, err
	}

	client, err := t.credentials.ValidateClient(ctx, req.Name, req.Secret)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.AuthenticateClient").Msg("client validation failed")
		return models.Token{}, err
	}

	value, err := t.generateToken()
	if err != nil {
		return models.Token{}, fmt.Errorf("error generating token: %w", err)
	}

	token, err := t.credentials.AddToken(ctx, user.UserID, client.ClientID, user.Role, value)
	if errors.Is(err, store.ErrTokenAlreadyIssued) {
		log.Debug().Int64("user_id", user.UserID).Int64("client_id", client.ClientID).Msg("grant already holds a live token")
		return t.credentials.GetToken(ctx, user.UserID, client.ClientID, user.Role)
	}
	if err != nil {
		log.Err(err).Str("func", "*tokenService.AuthenticateClient").Msg("token issue failed")
		return models.Token{}, fmt.Errorf("token issue failed: %w", err)
	}

	return token, nil
}

// Login validates the user, then the base client, and looks up the token
// previously issued to the base client for that user. It never issues a
// token.
//
// Returns ErrNoTokenIssued when the base client has not been authenticated
// for the user, or its token has expired.
func (t *tokenService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := t.credentials.ValidateUser(ctx, creds.Username, creds.Password)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.Login").Msg("user validation failed")
		return models.Session{}, err
	}

	client, err := t.credentials.ValidateClient(ctx, t.baseClientName, t.baseClientSecret)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.Login").Msg("base client validation failed")
		return models.Session{}, err
	}

	token, err := t.credentials.GetToken(ctx, user.UserID, client.ClientID, user.Role)
	if errors.Is(err, store.ErrTokenNotFound) {
		return models.Session{}, fmt.Errorf("%w: %w", ErrNoTokenIssued, err)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("token lookup failed: %w", err)
	}

	return models.Session{
		UserID:   user.UserID,
		Username: user.Username,
		Token:    token.Token,
		Role:     user.Role,
	}, nil
}
