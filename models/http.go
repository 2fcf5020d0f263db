// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Roles lists the role accounts to derive from the base account.
	// Order is preserved in the response.
	Roles []string `json:"roles,omitempty"`
}

// Credentials is a username/password pair, the body of POST /api/users/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ClientCredentials identifies an application by name and secret.
type ClientCredentials struct {
	Name   string `json:"client_name"`
	Secret string `json:"client_secret"`
}

// AuthenticateClientRequest is the body of POST /api/clients/authenticate:
// the user's credentials plus the credentials of the client that asks to act
// on the user's behalf.
type AuthenticateClientRequest struct {
	Credentials
	ClientCredentials
}

// RegisterClientRequest is the body of POST /api/clients.
type RegisterClientRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// TokenResponse is returned by POST /api/clients/authenticate.
type TokenResponse struct {
	Token string `json:"token"`
}

// Session is the result of a login: the user, the role of the account and
// the token previously issued to the base client.
type Session struct {
	UserID   int64  `json:"userid"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Role     string `json:"role"`
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
