// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
)

// maxBodyBytes caps request bodies; every request model is tiny.
const maxBodyBytes = 1 << 20

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// adminRoles may register clients and read /api/admin/identity.
	adminRoles []string

	// requestTimeout bounds every request; zero disables the timeout.
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, metrics *metrics.Metrics, adminRoles []string, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Strs("admin_roles", adminRoles).Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        metrics,
		adminRoles:     adminRoles,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// writeError logs err with its precise reason and writes the public status
// and message only.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, public := responseFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	utils.WriteError(w, public, status)
}
