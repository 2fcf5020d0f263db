// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMissingToken is reported by the access gate when a request carries
	// neither a "token" query parameter nor a bearer Authorization header.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoIdentity is reported when a gated handler runs without an identity
	// in the request context. It indicates a routing mistake.
	ErrNoIdentity = errors.New("no identity in request context")
)
