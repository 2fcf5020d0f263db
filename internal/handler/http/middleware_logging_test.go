// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// requestWithLogger puts a buffer-backed zerolog.Logger into the request
// context the same way withTraceID does.
func requestWithLogger(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		status       int
		body         string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:   "json response",
			method: http.MethodPost,
			target: "/api/users/login",
			status: http.StatusOK,
			body:   `{"ok":true}`,
			wantContains: []string{
				`"method":"POST"`,
				`"uri":"/api/users/login"`,
				`"status":200`,
				`"size":11`,
				`"duration":`,
				`"level":"info"`,
			},
		},
		{
			name:         "token query parameter is not logged",
			method:       http.MethodGet,
			target:       "/api/identity?token=secret-token-value",
			status:       http.StatusUnauthorized,
			wantContains: []string{`"uri":"/api/identity"`, `"status":401`, `"level":"warn"`},
			wantMissing:  []string{"secret-token-value"},
		},
		{
			name:         "no content",
			method:       http.MethodDelete,
			target:       "/api/tokens",
			status:       http.StatusNoContent,
			wantContains: []string{`"status":204`, `"size":0`},
		},
		{
			name:         "server error",
			method:       http.MethodPost,
			target:       "/api/users/register",
			status:       http.StatusInternalServerError,
			wantContains: []string{`"status":500`, `"level":"error"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			rec := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rec, requestWithLogger(tt.method, tt.target, &buf))

			assert.Equal(t, tt.status, rec.Code)
			for _, s := range tt.wantContains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "abc-123")
	h.withTraceID(next).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(traceIDHeader))
	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	_, _ = rw.Write([]byte("hello"))
	rw.WriteHeader(http.StatusTeapot)
	_, _ = rw.Write([]byte("!"))

	assert.Equal(t, http.StatusOK, rw.status, "implicit header wins")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, rw.size)
	assert.Equal(t, http.ResponseWriter(rec), rw.Unwrap())
}
