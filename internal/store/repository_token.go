// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a SQL [TokenRepository].
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// AddToken stores a token. A unique violation on either the token value or
// the (user_id, client_id, role) grant yields [ErrTokenAlreadyIssued].
func (r *tokenRepository) AddToken(ctx context.Context, token models.Token) (models.Token, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTokenQuery(r.db.builder, token)
	if err != nil {
		return models.Token{}, persistError(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassifier.Classify(err) == ClassUniqueViolation {
			return models.Token{}, ErrTokenAlreadyIssued
		}
		log.Err(err).Str("func", "*tokenRepository.AddToken").Msg("error inserting token")
		return models.Token{}, persistError(ErrExecutingStatement, err)
	}

	return token, nil
}

func (r *tokenRepository) FindToken(ctx context.Context, token string) (models.Token, error) {
	query, args, err := buildSelectTokenQuery(r.db.builder, token)
	if err != nil {
		return models.Token{}, persistError(ErrBuildingSQLQuery, err)
	}

	return r.scanToken(ctx, "*tokenRepository.FindToken", query, args)
}

func (r *tokenRepository) FindTokenByGrant(ctx context.Context, userID, clientID int64, role string) (models.Token, error) {
	query, args, err := buildSelectTokenByGrantQuery(r.db.builder, userID, clientID, role)
	if err != nil {
		return models.Token{}, persistError(ErrBuildingSQLQuery, err)
	}

	return r.scanToken(ctx, "*tokenRepository.FindTokenByGrant", query, args)
}

// DeleteToken removes a single token. Deleting an unknown token returns
// [ErrTokenNotFound].
func (r *tokenRepository) DeleteToken(ctx context.Context, token string) error {
	query, args, err := buildDeleteTokenQuery(r.db.builder, token)
	if err != nil {
		return persistError(ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.DeleteToken").Msg("error deleting token")
		return persistError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return persistError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredTokensQuery(r.db.builder, before)
	if err != nil {
		return 0, persistError(ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.DeleteExpiredTokens").Msg("error purging tokens")
		return 0, persistError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, persistError(ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *tokenRepository) scanToken(ctx context.Context, fn, query string, args []any) (models.Token, error) {
	var token models.Token
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&token.Token, &token.UserID, &token.ClientID, &token.Role, &token.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return models.Token{}, ErrTokenNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error selecting token")
		return models.Token{}, persistError(ErrScanningRow, err)
	}

	return token, nil
}
