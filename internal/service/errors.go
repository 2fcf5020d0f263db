// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/utils"
)

var (
	// ErrInvalidDataProvided wraps every request validation failure.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the only credential failure callers see. The
	// precise reason (unknown user or client, wrong password or secret) is
	// reachable through errors.Is for logging.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadPassword        = errors.New("bad password")
	ErrBadClientSecret    = errors.New("bad client secret")

	// ErrNoTokenIssued is returned by Login when the base client has not been
	// authenticated for the user yet.
	ErrNoTokenIssued = errors.New("no token issued")

	// ErrTokenExpired accompanies store.ErrTokenNotFound when a token exists
	// but is older than the configured TTL.
	ErrTokenExpired = errors.New("token expired")

	ErrRoleNotPermitted = errors.New("role not permitted")
)

// credentialError hides its reason behind a uniform message.
type credentialError struct {
	reason error
}

func invalidCredentials(reason error) error {
	return &credentialError{reason: reason}
}

func (e *credentialError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *credentialError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

func (e *credentialError) Unwrap() error {
	return e.reason
}

// hashError reports secrets the hasher refuses as invalid input.
func hashError(msg string, err error) error {
	if errors.Is(err, utils.ErrSecretTooLong) || errors.Is(err, utils.ErrEmptySecret) {
		return fmt.Errorf("%s: %w: %w", msg, ErrInvalidDataProvided, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
