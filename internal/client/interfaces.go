// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-auth-broker/models"
)

// Client is the set of broker operations exposed by the command line.
type Client interface {
	// RegisterUser registers the user and then authenticates the base client
	// for it, returning the registered user and the base client's token.
	RegisterUser(ctx context.Context, username, password string, roles []string) (models.User, string, error)

	// Login returns the session of the base client for the user.
	Login(ctx context.Context, username, password string) (models.Session, error)

	// Authenticate obtains a token for an arbitrary client acting on behalf
	// of the user.
	Authenticate(ctx context.Context, creds models.Credentials, client models.ClientCredentials) (string, error)

	// WhoAmI resolves token to the identity the broker attaches to it.
	WhoAmI(ctx context.Context, token string) (models.Identity, error)

	// Revoke deletes token on the broker.
	Revoke(ctx context.Context, token string) error
}
