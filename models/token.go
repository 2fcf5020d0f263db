// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Token is a grant: "this client may act as this user, in this role, until
// revoked". At most one token exists per (UserID, ClientID, Role) tuple.
type Token struct {
	// Token is the opaque random value presented by callers.
	Token string `json:"token"`

	UserID   int64  `json:"userid"`
	ClientID int64  `json:"clientid"`
	Role     string `json:"role"`

	// CreatedAt is used to enforce the optional token TTL.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Token model.
func (t Token) TableName() string {
	return "tokens"
}

// Expired reports whether t is older than ttl at the moment now.
// A non-positive ttl means tokens never expire.
func (t Token) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 || t.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(t.CreatedAt) >= ttl
}

// Identity returns the identity a request presenting t is resolved to.
func (t Token) Identity() Identity {
	return Identity{UserID: t.UserID, Role: t.Role, Token: t.Token}
}

// Identity is what AccessGate attaches to a request after a token is resolved.
type Identity struct {
	UserID int64  `json:"userid"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// String implements [fmt.Stringer] and never prints the token value.
func (i Identity) String() string {
	return "identity{role=" + i.Role + "}"
}
