// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// auth broker server. It aggregates all sub-configurations and is populated
// by merging values from command-line flags, environment variables and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds broker-level settings: the well-known base client, password
	// hashing cost, token lifetime and the roles allowed on admin routes.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the credential store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings used when talking to a remote broker.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds broker-level configuration values.
type App struct {
	// BaseClientName is the name of the well-known client provisioned at
	// startup and used by Login.
	// Env: APP_BASE_CLIENT_NAME
	BaseClientName string `env:"BASE_CLIENT_NAME"`

	// BaseClientSecret is the plaintext secret of the base client. It is
	// hashed before it reaches storage.
	// Env: APP_BASE_CLIENT_SECRET
	BaseClientSecret string `env:"BASE_CLIENT_SECRET"`

	// PasswordHashCost is the bcrypt cost for passwords and client secrets.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// TokenTTL is how long an issued token stays valid. Zero means tokens
	// never expire.
	// Env: APP_TOKEN_TTL
	TokenTTL time.Duration `env:"TOKEN_TTL"`

	// AdminRoles lists the roles admitted by role-restricted routes.
	// Env: APP_ADMIN_ROLES (comma separated)
	AdminRoles []string `env:"ADMIN_ROLES" envSeparator:","`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the credential store.
type DB struct {
	// DSN selects the backend: "memory", "sqlite://path" (or "file:..."),
	// otherwise a PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request. Zero disables the timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings for the outbound HTTP adapter.
type Adapter struct {
	// HTTPAddress is the base URL of the remote broker
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TokenCleanupInterval is how often expired tokens are purged. Only
	// used when App.TokenTTL is positive.
	// Env: WORKERS_TOKEN_CLEANUP_INTERVAL
	TokenCleanupInterval time.Duration `env:"TOKEN_CLEANUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to whatever is still unset before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags(os.Args[1:]).
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return cfg, nil
}
