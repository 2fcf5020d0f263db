// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

const (
	defaultBaseClientName       = "base"
	defaultAdminRole            = "admin"
	defaultTokenCleanupInterval = time.Minute
	defaultAdapterTimeout       = 10 * time.Second)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.BaseClientName == "" {
		cfg.App.BaseClientName = defaultBaseClientName
	}
	if cfg.App.PasswordHashCost == 0 {
		cfg.App.PasswordHashCost = bcrypt.DefaultCost
	}
	if len(cfg.App.AdminRoles) == 0 {
		cfg.App.AdminRoles = []string{defaultAdminRole}
	}
	if cfg.Workers.TokenCleanupInterval == 0 {
		cfg.Workers.TokenCleanupInterval = defaultTokenCleanupInterval
	}
}

// validate checks that the final merged [StructuredConfig] can start the
// broker.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.validateLocal(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.TokenCleanupInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validateLocal checks the groups needed to run the broker services without
// the HTTP server: app and storage.
func (cfg *StructuredConfig) validateLocal() error {
	if cfg.App.BaseClientSecret == "" {
		return fmt.Errorf("%w: base client secret is required", ErrInvalidAppConfigs)
	}
	if len(cfg.App.BaseClientSecret) > utils.MaxSecretBytes {
		return fmt.Errorf("%w: base client secret must not be longer than %d bytes",
			ErrInvalidAppConfigs, utils.MaxSecretBytes)
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost must be within [%d, %d]",
			ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.App.TokenTTL < 0 {
		return fmt.Errorf("%w: token ttl must not be negative", ErrInvalidAppConfigs)
	}
	if slices.Contains(cfg.App.AdminRoles, "") || slices.Contains(cfg.App.AdminRoles, models.RoleClient) {
		return fmt.Errorf("%w: admin roles must be non-empty and differ from %q",
			ErrInvalidAppConfigs, models.RoleClient)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.BaseClientName == "" {
		cfg.App.BaseClientName = defaultBaseClientName
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
