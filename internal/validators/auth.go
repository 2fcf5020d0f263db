// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldRoles        = "roles"
	FieldClientName   = "client_name"
	FieldClientSecret = "client_secret"
)

// AuthValidator validates the broker's request models.
type AuthValidator struct{}

// NewAuthValidator returns a [Validator] for registration, login and client
// authentication requests.
func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
//
// Supported types:
//   - models.RegisterRequest
//   - models.Credentials
//   - models.ClientCredentials
//   - models.AuthenticateClientRequest
//   - models.RegisterClientRequest
//
// Returns ErrUnsupportedType for anything else.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.ClientCredentials:
		return v.validateClientCredentials(value, fields...)
	case *models.ClientCredentials:
		return v.validateClientCredentials(*value, fields...)

	case models.AuthenticateClientRequest:
		return v.validateAuthenticateClientRequest(value)
	case *models.AuthenticateClientRequest:
		return v.validateAuthenticateClientRequest(*value)

	case models.RegisterClientRequest:
		return v.validateClientCredentials(models.ClientCredentials{Name: value.Name, Secret: value.Secret}, fields...)
	case *models.RegisterClientRequest:
		return v.validateClientCredentials(models.ClientCredentials{Name: value.Name, Secret: value.Secret}, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks the base credentials and, by default, the
// requested roles: each non-empty, unique, free of whitespace and '@', and
// not "client".
func (v *AuthValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldRoles}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername, FieldPassword:
			if err := v.validateCredentials(models.Credentials{Username: req.Username, Password: req.Password}, f); err != nil {
				return err
			}
		case FieldRoles:
			if err := validateRoles(req.Roles); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if c.Username == "" {
				return ErrEmptyUsername
			}
			if strings.IndexFunc(c.Username, unicode.IsSpace) >= 0 || strings.HasPrefix(c.Username, "@") {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
			if len(c.Password) > utils.MaxSecretBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateClientCredentials(c models.ClientCredentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientName, FieldClientSecret}
	}

	for _, f := range fields {
		switch f {
		case FieldClientName:
			if strings.TrimSpace(c.Name) == "" {
				return ErrEmptyClientName
			}
		case FieldClientSecret:
			if c.Secret == "" {
				return ErrEmptyClientSecret
			}
			if len(c.Secret) > utils.MaxSecretBytes {
				return ErrSecretTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateAuthenticateClientRequest(req models.AuthenticateClientRequest) error {
	if err := v.validateCredentials(req.Credentials); err != nil {
		return err
	}
	return v.validateClientCredentials(req.ClientCredentials)
}

func validateRoles(roles []string) error {
	seen := make(map[string]struct{}, len(roles))
	for i, role := range roles {
		switch {
		case role == "":
			return fmt.Errorf("%w: roles[%d]", ErrEmptyRole, i)
		case strings.IndexFunc(role, unicode.IsSpace) >= 0 || strings.Contains(role, "@"):
			return fmt.Errorf("%w: %q", ErrInvalidRole, role)
		case role == models.RoleClient:
			return ErrReservedRole
		}

		if _, dup := seen[role]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRole, role)
		}
		seen[role] = struct{}{}
	}

	return nil
}
