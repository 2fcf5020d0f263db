// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers of the auth broker server.
package handler

import (
	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/handler/http"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. It fails when no
// HTTP address is configured.
func NewHandlers(services *service.Services, metrics *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, metrics, cfg.App.AdminRoles, cfg.Server.RequestTimeout, logger),
	}, nil
}
