// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds the base client identity the CLI authenticates with.
type ClientApp struct {
	BaseClientName   string
	BaseClientSecret string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the broker.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
}

// GetClientConfig builds and validates the client configuration from
// environment variables and, when CONFIG is set, the JSON file. Environment
// values win over the file. Non-zero fields of overrides, usually taken from
// command line flags, win over both.
func GetClientConfig(overrides ClientAdapter) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		merged()
	if err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			BaseClientName:   cfg.App.BaseClientName,
			BaseClientSecret: cfg.App.BaseClientSecret,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}
	if overrides.HTTPAddress != "" {
		clientCfg.Adapter.HTTPAddress = overrides.HTTPAddress
	}
	if overrides.RequestTimeout != 0 {
		clientCfg.Adapter.RequestTimeout = overrides.RequestTimeout
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

// GetLocalConfig builds the configuration for running the broker services
// inside the client process (the CLI's --local mode). Sources are the same as
// [GetClientConfig]; the app and storage groups are validated, the server
// group is ignored.
func GetLocalConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		merged()
	if err != nil {
		return nil, fmt.Errorf("error get local config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, cfg.validateLocal()
}
