// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the auth broker server.
// It defines the Worker interface and a Workers aggregate that runs every
// worker until the shared context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails; a cancelled context is not an error.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
