// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RoleClient is the role of a base account. Every other role value marks a
// role account derived from a base account.
const RoleClient = "client"

// User represents an account entity used for authentication and authorization.
//
// A base account (Role == RoleClient) is created at registration; role
// accounts share the base account's UserID but carry their own username,
// credentials and role.
type User struct {
	// UserID is the identifier shared by a base account and all role
	// accounts derived from it.
	UserID int64 `json:"userid"`

	// Username is the unique login of this account.
	Username string `json:"username"`

	// Password holds the plaintext password. It is populated only on input
	// and once in the registration response, never read back from storage.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash persisted by the store.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	// Role is "client" for base accounts, the requested role otherwise.
	Role string `json:"role"`

	// Accounts lists the role accounts created together with a base account.
	// Populated only in the registration response.
	Accounts []User `json:"accounts,omitempty"`

	// CreatedAt is the timestamp when the account was persisted.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsBaseAccount reports whether u is a base account.
func (u User) IsBaseAccount() bool {
	return u.Role == RoleClient
}

// WithoutSecrets returns a copy of u with both the plaintext password and the
// hash cleared.
func (u User) WithoutSecrets() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
