// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/validators"
	"github.com/MKhiriev/go-auth-broker/models"
)

// AccountValidationService validates registration requests before they reach
// the wrapped AccountService.
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *AccountValidationService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterUser(ctx, req)
}

func (v *AccountValidationService) Wrap(inner AccountService) AccountService {
	v.inner = inner
	return v
}

// TokenValidationService validates login and client authentication requests
// before they reach the wrapped TokenService.
type TokenValidationService struct {
	inner     TokenService
	validator validators.Validator
}

func NewTokenValidationService() TokenServiceWrapper {
	return &TokenValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *TokenValidationService) AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (models.Token, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.AuthenticateClient(ctx, req)
}

// Login only checks that both fields are present; the username format is
// left to credential validation so that malformed and unknown usernames fail
// the same way.
func (v *TokenValidationService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return models.Session{}, fmt.Errorf("%w: empty username or password", ErrInvalidDataProvided)
	}

	return v.inner.Login(ctx, creds)
}

func (v *TokenValidationService) Wrap(inner TokenService) TokenService {
	v.inner = inner
	return v
}
