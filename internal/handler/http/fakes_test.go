// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/models"
	"github.com/stretchr/testify/require"
)

// ---- Fake: CredentialService ----

type fakeCredentialSvc struct {
	createClientFn  func(ctx context.Context, name, secret string) (models.Client, error)
	validateTokenFn func(ctx context.Context, token string) (models.Identity, error)
	revokeTokenFn   func(ctx context.Context, token string) error
}

func (f *fakeCredentialSvc) CreateUser(context.Context, string, string) (models.User, error) {
	return models.User{}, nil
}
func (f *fakeCredentialSvc) ValidateUser(context.Context, string, string) (models.User, error) {
	return models.User{}, nil
}
func (f *fakeCredentialSvc) CreateClient(ctx context.Context, name, secret string) (models.Client, error) {
	if f.createClientFn != nil {
		return f.createClientFn(ctx, name, secret)
	}
	return models.Client{ClientID: 1, Name: name}, nil
}
func (f *fakeCredentialSvc) ValidateClient(context.Context, string, string) (models.Client, error) {
	return models.Client{}, nil
}
func (f *fakeCredentialSvc) EnsureBaseClient(context.Context) (models.Client, error) {
	return models.Client{}, nil
}
func (f *fakeCredentialSvc) ValidateToken(ctx context.Context, token string) (models.Identity, error) {
	if f.validateTokenFn != nil {
		return f.validateTokenFn(ctx, token)
	}
	return models.Identity{}, store.ErrTokenNotFound
}
func (f *fakeCredentialSvc) GetToken(context.Context, int64, int64, string) (models.Token, error) {
	return models.Token{}, store.ErrTokenNotFound
}
func (f *fakeCredentialSvc) AddToken(context.Context, int64, int64, string, string) (models.Token, error) {
	return models.Token{}, nil
}
func (f *fakeCredentialSvc) RevokeToken(ctx context.Context, token string) error {
	if f.revokeTokenFn != nil {
		return f.revokeTokenFn(ctx, token)
	}
	return nil
}
func (f *fakeCredentialSvc) PurgeExpiredTokens(context.Context) (int64, error) {
	return 0, nil
}

// ---- Fake: TokenService ----

type fakeTokenSvc struct {
	authenticateFn func(ctx context.Context, req models.AuthenticateClientRequest) (models.Token, error)
	loginFn        func(ctx context.Context, creds models.Credentials) (models.Session, error)
}

func (f *fakeTokenSvc) AuthenticateClient(ctx context.Context, req models.AuthenticateClientRequest) (models.Token, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, req)
	}
	return models.Token{}, nil
}
func (f *fakeTokenSvc) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, creds)
	}
	return models.Session{}, nil
}

// ---- Fake: AccountService ----

type fakeAccountSvc struct {
	registerFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
}

func (f *fakeAccountSvc) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return models.User{}, nil
}

// ---- Helpers ----

type fakes struct {
	credentials *fakeCredentialSvc
	tokens      *fakeTokenSvc
	accounts    *fakeAccountSvc
}

func newFakes() *fakes {
	return &fakes{
		credentials: &fakeCredentialSvc{},
		tokens:      &fakeTokenSvc{},
		accounts:    &fakeAccountSvc{},
	}
}

func (f *fakes) services() *service.Services {
	return &service.Services{
		CredentialService: f.credentials,
		TokenService:      f.tokens,
		AccountService:    f.accounts,
	}
}

// newTestHandler builds a Handler with a nop logger and its own registry.
func newTestHandler(t *testing.T, services *service.Services, adminRoles ...string) *Handler {
	t.Helper()

	m, err := metrics.New()
	require.NoError(t, err)

	return NewHandler(services, m, adminRoles, 0, logger.Nop())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
