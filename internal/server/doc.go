// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the auth broker's HTTP server and background
// workers.
//
// It owns startup, signal handling and graceful shutdown: on SIGINT, SIGTERM
// or SIGQUIT the HTTP server stops accepting requests, in-flight requests are
// drained and the workers are cancelled.
package server
