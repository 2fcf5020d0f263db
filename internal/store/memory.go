// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-broker/models"
)

type grantKey struct {
	userID   int64
	clientID int64
	role     string
}

type userRoleKey struct {
	userID int64
	role   string
}

// MemoryStorage keeps users, clients and tokens in maps guarded by a single
// mutex. It implements [UserRepository], [ClientRepository] and
// [TokenRepository] and is meant for development and tests.
type MemoryStorage struct {
	mu sync.Mutex

	lastUserID   int64
	lastClientID int64

	users     map[string]models.User
	userRoles map[userRoleKey]struct{}
	clients   map[string]models.Client
	tokens    map[string]models.Token
	grants    map[grantKey]string
}

// NewMemoryStorage returns an empty storage. The first allocated ids are 1.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:     make(map[string]models.User),
		userRoles: make(map[userRoleKey]struct{}),
		clients:   make(map[string]models.Client),
		tokens:    make(map[string]models.Token),
		grants:    make(map[grantKey]string),
	}
}

func (m *MemoryStorage) NextUserID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, persistError(ErrExecutingQuery, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUserID++
	return m.lastUserID, nil
}

// CreateUsers validates every row before storing any of them.
func (m *MemoryStorage) CreateUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistError(ErrBeginningTransaction, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	batchNames := make(map[string]struct{}, len(users))
	batchRoles := make(map[userRoleKey]struct{}, len(users))
	for _, user := range users {
		roleKey := userRoleKey{userID: user.UserID, role: user.Role}

		_, taken := m.users[user.Username]
		_, inBatch := batchNames[user.Username]
		_, roleTaken := m.userRoles[roleKey]
		_, roleInBatch := batchRoles[roleKey]
		if taken || inBatch || roleTaken || roleInBatch {
			return nil, fmt.Errorf("%w: %s", ErrUsernameAlreadyExists, user.Username)
		}

		batchNames[user.Username] = struct{}{}
		batchRoles[roleKey] = struct{}{}
	}

	created := make([]models.User, 0, len(users))
	for _, user := range users {
		m.users[user.Username] = user
		m.userRoles[userRoleKey{userID: user.UserID, role: user.Role}] = struct{}{}
		created = append(created, user)
	}

	return created, nil
}

func (m *MemoryStorage) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, persistError(ErrExecutingQuery, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *MemoryStorage) SaveClient(ctx context.Context, client models.Client) (models.Client, error) {
	if err := ctx.Err(); err != nil {
		return models.Client{}, persistError(ErrBeginningTransaction, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.clients[client.Name]; ok {
		existing.SecretHash = client.SecretHash
		m.clients[client.Name] = existing
		return existing, nil
	}

	m.lastClientID++
	client.ClientID = m.lastClientID
	m.clients[client.Name] = client

	return client, nil
}

func (m *MemoryStorage) FindClientByName(ctx context.Context, name string) (models.Client, error) {
	if err := ctx.Err(); err != nil {
		return models.Client{}, persistError(ErrExecutingQuery, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.clients[name]
	if !ok {
		return models.Client{}, ErrClientNotFound
	}
	return client, nil
}

func (m *MemoryStorage) AddToken(ctx context.Context, token models.Token) (models.Token, error) {
	if err := ctx.Err(); err != nil {
		return models.Token{}, persistError(ErrExecutingStatement, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := grantKey{userID: token.UserID, clientID: token.ClientID, role: token.Role}
	if _, ok := m.grants[key]; ok {
		return models.Token{}, ErrTokenAlreadyIssued
	}
	if _, ok := m.tokens[token.Token]; ok {
		return models.Token{}, ErrTokenAlreadyIssued
	}

	m.tokens[token.Token] = token
	m.grants[key] = token.Token

	return token, nil
}

func (m *MemoryStorage) FindToken(ctx context.Context, token string) (models.Token, error) {
	if err := ctx.Err(); err != nil {
		return models.Token{}, persistError(ErrExecutingQuery, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found, ok := m.tokens[token]
	if !ok {
		return models.Token{}, ErrTokenNotFound
	}
	return found, nil
}

func (m *MemoryStorage) FindTokenByGrant(ctx context.Context, userID, clientID int64, role string) (models.Token, error) {
	if err := ctx.Err(); err != nil {
		return models.Token{}, persistError(ErrExecutingQuery, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.grants[grantKey{userID: userID, clientID: clientID, role: role}]
	if !ok {
		return models.Token{}, ErrTokenNotFound
	}
	return m.tokens[value], nil
}

func (m *MemoryStorage) DeleteToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return persistError(ErrExecutingStatement, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found, ok := m.tokens[token]
	if !ok {
		return ErrTokenNotFound
	}
	m.deleteLocked(found)

	return nil
}

func (m *MemoryStorage) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, persistError(ErrExecutingStatement, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for _, token := range m.tokens {
		if token.CreatedAt.Before(before) {
			m.deleteLocked(token)
			removed++
		}
	}

	return removed, nil
}

func (m *MemoryStorage) deleteLocked(token models.Token) {
	delete(m.tokens, token.Token)
	delete(m.grants, grantKey{userID: token.UserID, clientID: token.ClientID, role: token.Role})
}
