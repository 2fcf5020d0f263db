// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/mock"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAccountService_RegisterUser_WithRoles(t *testing.T) {
	services, _ := newMemoryServices(t, 0)
	ctx := context.Background()

	user, err := services.AccountService.RegisterUser(ctx, models.RegisterRequest{
		Username: "alice@example.com",
		Password: "pw",
		Roles:    []string{"viewer", "admin"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "alice@example.com", user.Username)
	assert.Equal(t, "pw", user.Password)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.Empty(t, user.PasswordHash)

	require.Len(t, user.Accounts, 2)
	assert.Equal(t, "alice_viewer", user.Accounts[0].Username)
	assert.Equal(t, "viewer", user.Accounts[0].Role)
	assert.Equal(t, "alice_admin", user.Accounts[1].Username)
	assert.Equal(t, "admin", user.Accounts[1].Role)
	assert.NotEqual(t, user.Accounts[0].Password, user.Accounts[1].Password)

	for _, account := range user.Accounts {
		assert.Equal(t, user.UserID, account.UserID)
		assert.NotEmpty(t, account.Password)
		assert.Empty(t, account.PasswordHash)

		validated, err := services.CredentialService.ValidateUser(ctx, account.Username, account.Password)
		require.NoError(t, err)
		assert.Equal(t, account.Role, validated.Role)
	}
}

func TestAccountService_RegisterUser_NoPlaintextStored(t *testing.T) {
	services, storages := newMemoryServices(t, 0)
	ctx := context.Background()

	_, err := services.AccountService.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{"admin"}})
	require.NoError(t, err)

	for _, username := range []string{"alice", "alice_admin"} {
		stored, err := storages.UserRepository.FindUserByUsername(ctx, username)
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.PasswordHash)
	}
}

func TestAccountService_RegisterUser_DuplicateUsername(t *testing.T) {
	services, _ := newMemoryServices(t, 0)
	ctx := context.Background()

	_, err := services.AccountService.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = services.AccountService.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestAccountService_RegisterUser_InvalidInput(t *testing.T) {
	services, _ := newMemoryServices(t, 0)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "empty username", req: models.RegisterRequest{Password: "pw"}},
		{name: "empty password", req: models.RegisterRequest{Username: "alice"}},
		{name: "empty role", req: models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{""}}},
		{name: "reserved role", req: models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{models.RoleClient}}},
		{name: "duplicate role", req: models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{"admin", "admin"}}},
		{name: "password over bcrypt limit", req: models.RegisterRequest{Username: "alice", Password: strings.Repeat("p", 73), Roles: []string{"admin"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.AccountService.RegisterUser(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAccountService_RegisterUser_AllOrNothing(t *testing.T) {
	services, storages := newMemoryServices(t, 0)
	ctx := context.Background()

	// occupies the username the admin role account of "bob" would get
	_, err := services.AccountService.RegisterUser(ctx, models.RegisterRequest{Username: "bob_admin", Password: "pw"})
	require.NoError(t, err)

	_, err = services.AccountService.RegisterUser(ctx, models.RegisterRequest{
		Username: "bob",
		Password: "pw",
		Roles:    []string{"viewer", "admin"},
	})
	require.ErrorIs(t, err, store.ErrUsernameAlreadyExists)

	for _, username := range []string{"bob", "bob_viewer"} {
		_, err = storages.UserRepository.FindUserByUsername(ctx, username)
		assert.ErrorIs(t, err, store.ErrUserNotFound, username)
	}
}

func TestAccountService_RegisterUser_ConcurrentDistinctIDs(t *testing.T) {
	services, _ := newMemoryServices(t, 0)
	ctx := context.Background()

	const n = 16
	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := services.AccountService.RegisterUser(ctx, models.RegisterRequest{
				Username: "user" + string(rune('a'+i)),
				Password: "pw",
				Roles:    []string{"admin"},
			})
			ids[i], errs[i] = user.UserID, err
		}()
	}
	wg.Wait()

	seen := make(map[int64]struct{}, n)
	for i := range n {
		require.NoError(t, errs[i])
		_, dup := seen[ids[i]]
		assert.False(t, dup, "id %d allocated twice", ids[i])
		seen[ids[i]] = struct{}{}
	}
}

func TestAccountService_RegisterUser_RepositoryFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		svc := NewAccountService(users, testHasher(), logger.Nop())

		users.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{}, store.ErrPersistFailure)

		_, err := svc.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "pw"})
		assert.ErrorIs(t, err, store.ErrPersistFailure)
	})

	t.Run("insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		svc := NewAccountService(users, testHasher(), logger.Nop())

		gomock.InOrder(
			users.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{}, store.ErrUserNotFound),
			users.EXPECT().NextUserID(ctx).Return(int64(5), nil),
			users.EXPECT().CreateUsers(ctx, gomock.Len(2)).DoAndReturn(
				func(_ context.Context, rows []models.User) ([]models.User, error) {
					for _, row := range rows {
						assert.Equal(t, int64(5), row.UserID)
						assert.Empty(t, row.Password)
					}
					return nil, store.ErrPersistFailure
				},
			),
		)

		user, err := svc.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{"admin"}})
		assert.ErrorIs(t, err, store.ErrPersistFailure)
		assert.Zero(t, user.UserID)
	})

	t.Run("password generation fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		svc := NewAccountService(users, testHasher(), logger.Nop()).(*accountService)
		svc.generatePassword = func() (string, error) { return "", errors.New("entropy exhausted") }

		users.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{}, store.ErrUserNotFound)
		users.EXPECT().NextUserID(ctx).Return(int64(5), nil)

		_, err := svc.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "pw", Roles: []string{"admin"}})
		assert.ErrorContains(t, err, "entropy exhausted")
	})
}

func TestUsernameLocalPart(t *testing.T) {
	assert.Equal(t, "alice", UsernameLocalPart("alice@example.com"))
	assert.Equal(t, "alice", UsernameLocalPart("alice"))
	assert.Equal(t, "alice_admin", RoleUsername(UsernameLocalPart("alice@x.io"), "admin"))
}
