// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(t *testing.T, status int, body string) *resty.Response {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   []error
	}{
		{name: "ok", status: http.StatusOK, body: `{}`},
		{name: "no content", status: http.StatusNoContent},
		{name: "invalid data", status: http.StatusBadRequest, body: `{"error":"invalid data provided"}`, want: []error{ErrBadRequest, ErrInvalidData}},
		{name: "missing token", status: http.StatusBadRequest, body: `{"error":"Authentication failure, missing token"}`, want: []error{ErrBadRequest, ErrMissingToken}},
		{name: "role not permitted", status: http.StatusForbidden, body: `{"error":"role not permitted"}`, want: []error{ErrForbidden, ErrRoleNotPermitted}},
		{name: "plain text body", status: http.StatusNotFound, body: "404 page not found", want: []error{ErrNotFound}},
		{name: "empty body", status: http.StatusConflict, want: []error{ErrConflict}},
		{name: "unknown status", status: http.StatusTeapot, body: "short and stout", want: []error{ErrUnexpectedStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapHTTPError(responseWith(t, tt.status, tt.body))
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []error
	}{
		{name: "invalid data", err: fmt.Errorf("%w: empty username", service.ErrInvalidDataProvided), want: []error{ErrBadRequest, ErrInvalidData}},
		{name: "credentials", err: fmt.Errorf("wrapped: %w", service.ErrInvalidCredentials), want: []error{ErrUnauthorized, ErrInvalidCredentials}},
		{name: "no token issued before token not found", err: fmt.Errorf("%w: %w", service.ErrNoTokenIssued, store.ErrTokenNotFound), want: []error{ErrForbidden, ErrNoTokenIssued}},
		{name: "token not found", err: store.ErrTokenNotFound, want: []error{ErrUnauthorized, ErrInvalidToken}},
		{name: "duplicate username", err: store.ErrUsernameAlreadyExists, want: []error{ErrConflict, ErrUsernameAlreadyExists}},
		{name: "anything else", err: errors.New("disk on fire"), want: []error{ErrInternalServerError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapServiceError(tt.err)
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	assert.NoError(t, mapServiceError(nil))
}
