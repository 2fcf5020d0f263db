// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	testBaseClient = "base"
	testBaseSecret = "base-secret"
)

func testAppConfig() config.App {
	return config.App{
		BaseClientName:   testBaseClient,
		BaseClientSecret: testBaseSecret,
		PasswordHashCost: bcrypt.MinCost,
	}
}

func testHasher() *utils.PasswordHasher {
	return utils.NewPasswordHasher(bcrypt.MinCost)
}

// newMemoryServices wires real services over a fresh in-memory store and
// provisions the base client.
func newMemoryServices(t *testing.T, ttl time.Duration) (*Services, *store.Storages) {
	t.Helper()

	cfg := testAppConfig()
	cfg.TokenTTL = ttl

	storages := store.NewMemoryStorages(store.NewMemoryStorage())
	services := NewServices(storages, cfg, logger.Nop())

	if _, err := services.CredentialService.EnsureBaseClient(t.Context()); err != nil {
		t.Fatalf("EnsureBaseClient: %v", err)
	}

	return services, storages
}
