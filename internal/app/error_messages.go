// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the public message strings of the auth broker API.
//
// The server writes them into {"error": "..."} response bodies and the HTTP
// adapter reads them back to tell apart failures that share a status code.
// Keeping them in one place keeps both sides in agreement.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a request fails validation
	// (e.g. empty username, duplicate role).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgMissingToken is returned by the access gate when a request carries
	// no token at all.
	MsgMissingToken = "Authentication failure, missing token"

	// MsgAuthFailure is returned by the access gate when the token is
	// unknown, revoked or expired.
	MsgAuthFailure = "Authentication failure"

	// MsgInvalidCredentials is the single message for every user or client
	// credential mismatch.
	MsgInvalidCredentials = "invalid credentials"

	// MsgNoTokenIssued is returned by login when the base client has not
	// been authenticated for the user.
	MsgNoTokenIssued = "no token issued"

	// MsgRoleNotPermitted is returned by the access gate when the identity's
	// role is not allowed on the route.
	MsgRoleNotPermitted = "role not permitted"

	// MsgUsernameAlreadyExists is returned when registration collides with an
	// existing account.
	MsgUsernameAlreadyExists = "username already exists"
)
