// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-auth-broker/models"
)

func TestAuthValidator_RegisterRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.RegisterRequest
		fields  []string
		wantErr error
	}{
		{name: "valid no roles", req: models.RegisterRequest{Username: "bob", Password: "p"}},
		{name: "valid email with roles", req: models.RegisterRequest{Username: "bob@example.com", Password: "p", Roles: []string{"admin", "ops"}}},
		{name: "empty username", req: models.RegisterRequest{Password: "p"}, wantErr: ErrEmptyUsername},
		{name: "username with space", req: models.RegisterRequest{Username: "bo b", Password: "p"}, wantErr: ErrInvalidUsername},
		{name: "username starting with @", req: models.RegisterRequest{Username: "@bob", Password: "p"}, wantErr: ErrInvalidUsername},
		{name: "empty password", req: models.RegisterRequest{Username: "bob"}, wantErr: ErrEmptyPassword},
		{name: "password at bcrypt limit", req: models.RegisterRequest{Username: "bob", Password: strings.Repeat("p", 72)}},
		{name: "password over bcrypt limit", req: models.RegisterRequest{Username: "bob", Password: strings.Repeat("p", 73)}, wantErr: ErrPasswordTooLong},
		{name: "empty role", req: models.RegisterRequest{Username: "bob", Password: "p", Roles: []string{""}}, wantErr: ErrEmptyRole},
		{name: "client role", req: models.RegisterRequest{Username: "bob", Password: "p", Roles: []string{"client"}}, wantErr: ErrReservedRole},
		{name: "duplicate role", req: models.RegisterRequest{Username: "bob", Password: "p", Roles: []string{"admin", "admin"}}, wantErr: ErrDuplicateRole},
		{name: "role with @", req: models.RegisterRequest{Username: "bob", Password: "p", Roles: []string{"a@b"}}, wantErr: ErrInvalidRole},
		{name: "scoped to roles only", req: models.RegisterRequest{Roles: []string{"admin"}}, fields: []string{FieldRoles}},
		{name: "unknown field", req: models.RegisterRequest{}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthValidator_PointerForms(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, &models.Credentials{Username: "bob", Password: "p"}))
	assert.ErrorIs(t, v.Validate(ctx, &models.RegisterRequest{}), ErrEmptyUsername)
	assert.ErrorIs(t, v.Validate(ctx, &models.RegisterClientRequest{Name: "app"}), ErrEmptyClientSecret)
}

func TestAuthValidator_AuthenticateClientRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	valid := models.AuthenticateClientRequest{
		Credentials:       models.Credentials{Username: "bob", Password: "p"},
		ClientCredentials: models.ClientCredentials{Name: "base", Secret: "s"},
	}
	assert.NoError(t, v.Validate(ctx, valid))

	noClient := valid
	noClient.ClientCredentials.Name = " "
	assert.ErrorIs(t, v.Validate(ctx, noClient), ErrEmptyClientName)

	longSecret := valid
	longSecret.ClientCredentials.Secret = strings.Repeat("s", 73)
	assert.ErrorIs(t, v.Validate(ctx, longSecret), ErrSecretTooLong)

	noPassword := valid
	noPassword.Credentials.Password = ""
	assert.ErrorIs(t, v.Validate(ctx, noPassword), ErrEmptyPassword)
}

func TestAuthValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewAuthValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
