// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a user (base or role
	// account) cannot be created because the username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when no account has the requested username.
	ErrUserNotFound = errors.New("user not found")

	// ErrClientNotFound is returned when no client has the requested name.
	ErrClientNotFound = errors.New("client not found")

	// ErrTokenNotFound is returned when the token value or grant is unknown.
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenAlreadyIssued is returned by AddToken when the
	// (user_id, client_id, role) grant already holds a token.
	ErrTokenAlreadyIssued = errors.New("token already issued for this grant")

	// ErrPersistFailure wraps every storage-level failure that is not one of
	// the domain conditions above.
	ErrPersistFailure = errors.New("persist failure")
)

// Low-level database operation errors. They are always returned wrapped
// together with [ErrPersistFailure].
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrUnknownSequence is returned when an id sequence row is missing,
	// which means migrations have not been applied.
	ErrUnknownSequence = errors.New("unknown id sequence")
)
