// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
)

// TokenPurger removes expired tokens and reports how many were removed.
// service.CredentialService satisfies it.
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// TokenCleanupWorker periodically deletes tokens older than the TTL so the
// tokens relation does not grow without bound. Expired tokens are already
// rejected on use; the worker only reclaims storage.
type TokenCleanupWorker struct {
	purger   TokenPurger
	metrics  *metrics.Metrics
	interval time.Duration
	logger   *logger.Logger
}

func NewTokenCleanupWorker(purger TokenPurger, m *metrics.Metrics, interval time.Duration, logger *logger.Logger) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		purger:   purger,
		metrics:  m,
		interval: interval,
		logger:   logger,
	}
}

// Run purges once per interval until ctx is cancelled. A failed purge is
// logged and retried on the next tick.
func (w *TokenCleanupWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("token cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("token cleanup worker stopped")
			return nil
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *TokenCleanupWorker) purge(ctx context.Context) {
	removed, err := w.purger.PurgeExpiredTokens(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "*TokenCleanupWorker.purge").Msg("error purging expired tokens")
		}
		return
	}

	w.metrics.AddPurgedTokens(removed)
	if removed > 0 {
		w.logger.Info().Int64("removed", removed).Msg("expired tokens purged")
	}
}
