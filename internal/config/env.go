// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Broker settings are read from variables grouped by prefix: APP_ for
// credentials, tokens and roles, STORAGE_DB_ for the store DSN, SERVER_ and
// ADAPTER_ for the two HTTP ends, WORKERS_ for background jobs. CONFIG names
// the JSON file layered underneath.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom reads cfg from environ instead of the process environment.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
