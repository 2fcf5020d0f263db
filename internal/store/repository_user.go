// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

// userRepository is the SQL implementation of [UserRepository] backed by the
// "users" and "id_sequences" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// NextUserID allocates the next id from the "users" sequence row.
func (r *userRepository) NextUserID(ctx context.Context) (int64, error) {
	id, err := r.db.nextID(ctx, r.db, usersSequence)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.NextUserID").Msg("error allocating user id")
		return 0, err
	}

	return id, nil
}

// CreateUsers inserts every account inside a single transaction, so a
// failure on any row leaves no partial registration behind.
//
// Error handling:
//   - unique violation on any row → [ErrUsernameAlreadyExists].
//   - any other driver-level error → [ErrPersistFailure].
func (r *userRepository) CreateUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	log := logger.FromContext(ctx)

	created := make([]models.User, 0, len(users))
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		for _, user := range users {
			query, args, err := buildInsertUserQuery(r.db.builder, user)
			if err != nil {
				return persistError(ErrBuildingSQLQuery, err)
			}

			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				class := r.db.errorClassifier.Classify(err)
				log.Err(err).Str("func", "*userRepository.CreateUsers").
					Str("username", user.Username).
					Stringer("error_class", class).
					Msg("error inserting user")

				if class == ClassUniqueViolation {
					return fmt.Errorf("%w: %s", ErrUsernameAlreadyExists, user.Username)
				}
				return persistError(ErrExecutingStatement, err)
			}

			created = append(created, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// FindUserByUsername returns the account with the given username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByUsernameQuery(r.db.builder, username)
	if err != nil {
		return models.User{}, persistError(ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error selecting user")
		return models.User{}, persistError(ErrScanningRow, err)
	}

	return user, nil
}
