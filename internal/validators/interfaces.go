// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request models before they reach the broker's
// services.
//
// A Validator accepts any supported model and an optional list of field
// names; when fields are given only those are checked. Services wrap their
// inner implementation with a validating decorator, so transports and
// storage never see malformed input.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
