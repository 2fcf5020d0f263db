// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. The token cleanup worker is
// only started when tokens can expire.
func NewWorkers(services *service.Services, m *metrics.Metrics, app config.App, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if app.TokenTTL > 0 {
		w.workers = append(w.workers, NewTokenCleanupWorker(services.CredentialService, m, cfg.TokenCleanupInterval, logger))
	}

	logger.Info().Int("workers", len(w.workers)).Msg("workers created")
	return w
}

// Run starts every worker concurrently and waits for all of them. The first
// failing worker cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}
