// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/mock"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// blockingWorker runs until its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) error {
	b.started.Add(1)
	<-ctx.Done()
	return nil
}

// failingWorker fails immediately.
type failingWorker struct {
	err error
}

func (f *failingWorker) Run(context.Context) error {
	return f.err
}

func TestWorkers_Run_StopsOnCancel(t *testing.T) {
	w1, w2 := &blockingWorker{}, &blockingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

func TestWorkers_Run_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	ws := &Workers{workers: []Worker{&blockingWorker{}, &failingWorker{err: boom}}}

	err := ws.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}
	assert.NoError(t, ws.Run(context.Background()))
}

func TestNewWorkers(t *testing.T) {
	services := &service.Services{}

	ws := NewWorkers(services, nil, config.App{}, config.Workers{TokenCleanupInterval: time.Minute}, logger.Nop())
	assert.Empty(t, ws.workers, "no cleanup without a TTL")

	ws = NewWorkers(services, nil, config.App{TokenTTL: time.Hour}, config.Workers{TokenCleanupInterval: time.Minute}, logger.Nop())
	require.Len(t, ws.workers, 1)
	assert.IsType(t, &TokenCleanupWorker{}, ws.workers[0])
}

func TestTokenCleanupWorker_PurgesOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialService(ctrl)

	var calls atomic.Int32
	credentials.EXPECT().PurgeExpiredTokens(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("transient")
		}
		return 2, nil
	}).MinTimes(2)

	w := NewTokenCleanupWorker(credentials, nil, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	assert.NoError(t, <-done)
}
