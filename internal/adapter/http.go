// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

const (
	registerPath     = "/api/users/register"
	loginPath        = "/api/users/login"
	authenticatePath = "/api/clients/authenticate"
	identityPath     = "/api/identity"
	tokensPath       = "/api/tokens"
)

type httpAuthAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs an HTTP/REST implementation of [AuthService].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAuthAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (AuthService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpAuthAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// RegisterUser implements [AuthService]. It POSTs req to
// POST /api/users/register and returns the registered user with its role
// accounts.
func (h *httpAuthAdapter) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post(registerPath)
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.logger.Debug().Int64("user_id", user.UserID).Int("accounts", len(user.Accounts)).Msg("user registered")
	return user, nil
}

// AuthenticateClient implements [AuthService]. It POSTs the user and client
// credentials to POST /api/clients/authenticate and returns the token.
func (h *httpAuthAdapter) AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (string, error) {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&tokenResp).
		Post(authenticatePath)
	if err != nil {
		return "", fmt.Errorf("authenticate client request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if tokenResp.Token == "" {
		return "", fmt.Errorf("authenticate client: %w", ErrEmptyToken)
	}

	return tokenResp.Token, nil
}

// Login implements [AuthService]. It POSTs creds to POST /api/users/login and
// returns the session of the base client.
func (h *httpAuthAdapter) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&session).
		Post(loginPath)
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// Identity implements [AuthService]. It calls GET /api/identity with token as
// a bearer credential.
func (h *httpAuthAdapter) Identity(ctx context.Context, token string) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ErrEmptyToken
	}

	var identity models.Identity

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&identity).
		Get(identityPath)
	if err != nil {
		return models.Identity{}, fmt.Errorf("identity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return identity, nil
}

// RevokeToken implements [AuthService]. It calls DELETE /api/tokens with
// token as a bearer credential.
func (h *httpAuthAdapter) RevokeToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Delete(tokensPath)
	if err != nil {
		return fmt.Errorf("revoke token request: %w", err)
	}

	return mapHTTPError(resp)
}
