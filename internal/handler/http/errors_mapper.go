// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-broker/internal/app"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is matched in order with errors.Is. A credential error also
// unwraps to store.ErrUserNotFound or store.ErrClientNotFound, so
// ErrInvalidCredentials must stay ahead of anything that could reveal the
// precise reason. Likewise ErrNoTokenIssued wraps store.ErrTokenNotFound.
var errorResponses = []errorResponse{
	{target: ErrInvalidJSON, status: http.StatusBadRequest, message: app.MsgInvalidJSON},
	{target: service.ErrInvalidDataProvided, status: http.StatusBadRequest, message: app.MsgInvalidDataProvided},
	{target: ErrMissingToken, status: http.StatusBadRequest, message: app.MsgMissingToken},

	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, message: app.MsgInvalidCredentials},
	{target: service.ErrNoTokenIssued, status: http.StatusForbidden, message: app.MsgNoTokenIssued},
	{target: service.ErrRoleNotPermitted, status: http.StatusForbidden, message: app.MsgRoleNotPermitted},
	{target: store.ErrTokenNotFound, status: http.StatusUnauthorized, message: app.MsgAuthFailure},

	{target: store.ErrUsernameAlreadyExists, status: http.StatusConflict, message: app.MsgUsernameAlreadyExists},
	{target: store.ErrPersistFailure, status: http.StatusInternalServerError},
}

// responseFromError returns the status code and public message for err.
// Unknown errors become 500 with the standard status text.
func responseFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			if resp.message == "" || resp.status >= http.StatusInternalServerError {
				return resp.status, http.StatusText(resp.status)
			}
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
