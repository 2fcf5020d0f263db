// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Client is an application permitted to request tokens on behalf of users.
type Client struct {
	// ClientID is the store-assigned identifier of the client.
	ClientID int64 `json:"clientid"`

	// Name is the unique, human-readable client name (e.g. "base").
	Name string `json:"name"`

	// Secret is the plaintext client secret, only present on input.
	Secret string `json:"secret,omitempty"`

	// SecretHash is the bcrypt hash persisted by the store.
	SecretHash string `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Client model.
func (c Client) TableName() string {
	return "clients"
}
