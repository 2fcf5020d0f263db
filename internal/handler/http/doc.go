// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the auth broker.
//
// It exposes route wiring, request handlers and middleware used by the REST
// API. Request tracing, access logging, metrics and the access gate
// (validate, validateRole) run in this package before requests reach the
// service layer.
package http
