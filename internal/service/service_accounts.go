// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
	"golang.org/x/sync/errgroup"
)

// accountService registers base accounts together with their role accounts.
type accountService struct {
	users  store.UserRepository
	hasher *utils.PasswordHasher

	// generatePassword is utils.GeneratePassword outside of tests.
	generatePassword func() (string, error)

	now    func() time.Time
	logger *logger.Logger
}

// NewAccountService constructs an AccountService persisting through users.
func NewAccountService(users store.UserRepository, hasher *utils.PasswordHasher, logger *logger.Logger) AccountService {
	return &accountService{
		users:            users,
		hasher:           hasher,
		generatePassword: utils.GeneratePassword,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// RegisterUser creates the base account and one role account per requested
// role. All accounts share one freshly allocated user id and are stored in a
// single transaction, so either every account exists afterwards or none does.
//
// The returned user carries the plaintext base password and, in Accounts,
// every role account with its generated password in request order. Hashes
// are never returned.
func (a *accountService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := a.users.FindUserByUsername(ctx, req.Username)
	if err == nil {
		return models.User{}, store.ErrUsernameAlreadyExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	userID, err := a.users.NextUserID(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("error allocating user id: %w", err)
	}

	createdAt := a.now()

	baseHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return models.User{}, hashError("error hashing password", err)
	}

	base := models.User{
		UserID:       userID,
		Username:     req.Username,
		Password:     req.Password,
		PasswordHash: baseHash,
		Role:         models.RoleClient,
		CreatedAt:    createdAt,
	}

	accounts, err := a.prepareRoleAccounts(ctx, base, req.Roles)
	if err != nil {
		return models.User{}, err
	}

	// plaintext passwords are returned to the caller but never stored
	rows := make([]models.User, 0, len(accounts)+1)
	for _, account := range append([]models.User{base}, accounts...) {
		account.Password = ""
		rows = append(rows, account)
	}

	if _, err = a.users.CreateUsers(ctx, rows); err != nil {
		log.Err(err).Str("func", "*accountService.RegisterUser").Int64("user_id", userID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	result := base
	result.PasswordHash = ""
	if len(accounts) > 0 {
		result.Accounts = make([]models.User, len(accounts))
		for i, account := range accounts {
			account.PasswordHash = ""
			result.Accounts[i] = account
		}
	}

	log.Info().Int64("user_id", userID).Int("role_accounts", len(accounts)).Msg("user registered")
	return result, nil
}

// prepareRoleAccounts derives, generates and hashes the role accounts of
// base concurrently. The result keeps the order of roles.
func (a *accountService) prepareRoleAccounts(ctx context.Context, base models.User, roles []string) ([]models.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	accounts := make([]models.User, len(roles))
	localPart := UsernameLocalPart(base.Username)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, role := range roles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			password, err := a.generatePassword()
			if err != nil {
				return fmt.Errorf("error generating password for role %q: %w", role, err)
			}

			hash, err := a.hasher.Hash(password)
			if err != nil {
				return fmt.Errorf("error hashing password for role %q: %w", role, err)
			}

			accounts[i] = models.User{
				UserID:       base.UserID,
				Username:     RoleUsername(localPart, role),
				Password:     password,
				PasswordHash: hash,
				Role:         role,
				CreatedAt:    base.CreatedAt,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// UsernameLocalPart returns the text before the first '@' of an email-shaped
// username, or the username itself.
func UsernameLocalPart(username string) string {
	if local, _, found := strings.Cut(username, "@"); found {
		return local
	}
	return username
}

// RoleUsername derives the username of a role account: "<local>_<role>".
func RoleUsername(localPart, role string) string {
	return localPart + "_" + role
}
