// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
)

type Services struct {
	CredentialService CredentialService
	TokenService      TokenService
	AccountService    AccountService
}

// NewServices wires the broker services over storages. Token and account
// services are wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	hasher := utils.NewPasswordHasher(cfg.PasswordHashCost)

	credentials := NewCredentialService(storages, hasher, cfg, logger)
	tokens := NewTokenValidationService().Wrap(NewTokenService(credentials, cfg, logger))
	accounts := NewAccountValidationService().Wrap(NewAccountService(storages.UserRepository, hasher, logger))

	return &Services{
		CredentialService: credentials,
		TokenService:      tokens,
		AccountService:    accounts,
	}
}
