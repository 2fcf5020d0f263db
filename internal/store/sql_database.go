// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/migrations"
)

type dialect string

const (
	dialectPostgres dialect = "postgres"
	dialectSQLite   dialect = "sqlite"
)

// DB wraps a *sql.DB together with the dialect-specific pieces the
// repositories need: the squirrel placeholder format and the driver error
// classifier.
type DB struct {
	*sql.DB
	dialect         dialect
	builder         sq.StatementBuilderType
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

func newDB(conn *sql.DB, d dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: d,
		logger:  log,
	}

	switch d {
	case dialectSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassifier = NewSQLiteErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassifier = NewPostgresErrorClassifier()
	}

	return db
}

// Migrate applies the embedded migrations for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, string(db.dialect))
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return persistError(ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Err(rbErr).Str("func", "*DB.withTx").Msg("error rolling back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return persistError(ErrCommitingTransaction, err)
	}

	return nil
}

// nextID increments the named counter row and returns the new value.
func (db *DB) nextID(ctx context.Context, q queryer, sequence string) (int64, error) {
	query, args, err := buildNextIDQuery(db.builder, sequence)
	if err != nil {
		return 0, persistError(ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isNoRows(err) {
			return 0, persistError(ErrUnknownSequence, fmt.Errorf("sequence %q", sequence))
		}
		return 0, persistError(ErrExecutingQuery, err)
	}

	return id, nil
}

func persistError(stage, err error) error {
	return fmt.Errorf("%w: %w: %w", ErrPersistFailure, stage, err)
}
