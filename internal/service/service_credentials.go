// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

// credentialService is the concrete [CredentialService]. Every call goes
// to the repositories; the only state it keeps is configuration.
type credentialService struct {
	users   store.UserRepository
	clients store.ClientRepository
	tokens  store.TokenRepository

	hasher *utils.PasswordHasher

	// baseClientName and baseClientSecret identify the well-known client
	// provisioned by EnsureBaseClient.
	baseClientName   string
	baseClientSecret string

	// tokenTTL is the token lifetime; zero disables expiry.
	tokenTTL time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewCredentialService constructs a [CredentialService] over the given
// storages. It is safe for concurrent use.
func NewCredentialService(storages *store.Storages, hasher *utils.PasswordHasher, cfg config.App, logger *logger.Logger) CredentialService {
	return &credentialService{
		users:            storages.UserRepository,
		clients:          storages.ClientRepository,
		tokens:           storages.TokenRepository,
		hasher:           hasher,
		baseClientName:   cfg.BaseClientName,
		baseClientSecret: cfg.BaseClientSecret,
		tokenTTL:         cfg.TokenTTL,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// CreateUser stores a single base account with a freshly allocated id.
//
// Returns the stored user without secrets or:
//   - ErrInvalidDataProvided if username or password is empty, or the
//     password is longer than bcrypt accepts.
//   - store.ErrUsernameAlreadyExists if the username is taken.
func (s *credentialService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, hashError("error hashing password", err)
	}

	id, err := s.users.NextUserID(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("error allocating user id: %w", err)
	}

	user := models.User{
		UserID:       id,
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleClient,
		CreatedAt:    s.now(),
	}
	if _, err = s.users.CreateUsers(ctx, []models.User{user}); err != nil {
		log.Err(err).Str("func", "*credentialService.CreateUser").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user.WithoutSecrets(), nil
}

// ValidateUser checks a username and password. An unknown username still
// costs one bcrypt comparison, and both failure kinds surface as
// [ErrInvalidCredentials].
func (s *credentialService) ValidateUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.hasher.CompareDummy(password)
			log.Debug().Str("func", "*credentialService.ValidateUser").Msg("user not found")
			return models.User{}, invalidCredentials(err)
		}
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		log.Debug().Str("func", "*credentialService.ValidateUser").Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, invalidCredentials(ErrBadPassword)
	}

	return user.WithoutSecrets(), nil
}

// CreateClient upserts a client by name, replacing the secret of an existing
// one.
func (s *credentialService) CreateClient(ctx context.Context, name, secret string) (models.Client, error) {
	if strings.TrimSpace(name) == "" || secret == "" {
		return models.Client{}, ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return models.Client{}, hashError("error hashing client secret", err)
	}

	client, err := s.clients.SaveClient(ctx, models.Client{Name: name, SecretHash: hash, CreatedAt: s.now()})
	if err != nil {
		return models.Client{}, fmt.Errorf("client creation ended with error: %w", err)
	}

	client.SecretHash = ""
	return client, nil
}

// ValidateClient mirrors [credentialService.ValidateUser] for client
// applications.
func (s *credentialService) ValidateClient(ctx context.Context, name, secret string) (models.Client, error) {
	log := logger.FromContext(ctx)

	client, err := s.clients.FindClientByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			s.hasher.CompareDummy(secret)
			log.Debug().Str("func", "*credentialService.ValidateClient").Str("client", name).Msg("client not found")
			return models.Client{}, invalidCredentials(err)
		}
		return models.Client{}, fmt.Errorf("client search by name failed: %w", err)
	}

	if !s.hasher.Compare(client.SecretHash, secret) {
		log.Debug().Str("func", "*credentialService.ValidateClient").Str("client", name).Msg("wrong client secret")
		return models.Client{}, invalidCredentials(ErrBadClientSecret)
	}

	client.SecretHash = ""
	return client, nil
}

func (s *credentialService) EnsureBaseClient(ctx context.Context) (models.Client, error) {
	client, err := s.CreateClient(ctx, s.baseClientName, s.baseClientSecret)
	if err != nil {
		return models.Client{}, fmt.Errorf("error provisioning base client %q: %w", s.baseClientName, err)
	}

	s.logger.Info().Str("client", client.Name).Int64("client_id", client.ClientID).Msg("base client provisioned")
	return client, nil
}

// ValidateToken resolves a token to the identity it was issued for. Unknown
// and expired tokens both yield store.ErrTokenNotFound.
func (s *credentialService) ValidateToken(ctx context.Context, token string) (models.Identity, error) {
	found, err := s.tokens.FindToken(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}

	if found.Expired(s.tokenTTL, s.now()) {
		return models.Identity{}, fmt.Errorf("%w: %w", store.ErrTokenNotFound, ErrTokenExpired)
	}

	return found.Identity(), nil
}

// GetToken looks up the live token of a grant. It never issues one.
func (s *credentialService) GetToken(ctx context.Context, userID, clientID int64, role string) (models.Token, error) {
	found, err := s.tokens.FindTokenByGrant(ctx, userID, clientID, role)
	if err != nil {
		return models.Token{}, err
	}

	if found.Expired(s.tokenTTL, s.now()) {
		return models.Token{}, fmt.Errorf("%w: %w", store.ErrTokenNotFound, ErrTokenExpired)
	}

	return found, nil
}

// AddToken stores a token for a grant. When the grant already holds an
// expired token, that token is removed and the insert is attempted once more;
// a live token yields store.ErrTokenAlreadyIssued.
func (s *credentialService) AddToken(ctx context.Context, userID, clientID int64, role, token string) (models.Token, error) {
	log := logger.FromContext(ctx)

	newToken := models.Token{Token: token, UserID: userID, ClientID: clientID, Role: role, CreatedAt: s.now()}

	added, err := s.tokens.AddToken(ctx, newToken)
	if !errors.Is(err, store.ErrTokenAlreadyIssued) {
		return added, err
	}

	existing, findErr := s.tokens.FindTokenByGrant(ctx, userID, clientID, role)
	if findErr != nil || !existing.Expired(s.tokenTTL, s.now()) {
		return models.Token{}, err
	}

	log.Info().Str("func", "*credentialService.AddToken").Int64("user_id", userID).Msg("replacing expired token")
	if delErr := s.tokens.DeleteToken(ctx, existing.Token); delErr != nil && !errors.Is(delErr, store.ErrTokenNotFound) {
		return models.Token{}, fmt.Errorf("error revoking expired token: %w", delErr)
	}

	return s.tokens.AddToken(ctx, newToken)
}

func (s *credentialService) RevokeToken(ctx context.Context, token string) error {
	if err := s.tokens.DeleteToken(ctx, token); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens deletes tokens older than the TTL. It is a no-op when
// tokens never expire.
func (s *credentialService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	if s.tokenTTL <= 0 {
		return 0, nil
	}

	removed, err := s.tokens.DeleteExpiredTokens(ctx, s.now().Add(-s.tokenTTL))
	if err != nil {
		return 0, fmt.Errorf("error purging expired tokens: %w", err)
	}

	return removed, nil
}
