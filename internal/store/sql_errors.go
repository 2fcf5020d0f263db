// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClass is the result of [ErrorClassifier.Classify].
type ErrorClass int

const (
	// ClassOther covers every error without a dedicated class.
	ClassOther ErrorClass = iota

	// ClassUniqueViolation is a unique or primary key constraint failure.
	ClassUniqueViolation

	// ClassTransient is a connection, lock or serialization failure. It is
	// only logged; nothing in the broker retries automatically.
	ClassTransient
)

func (c ErrorClass) String() string {
	switch c {
	case ClassUniqueViolation:
		return "unique_violation"
	case ClassTransient:
		return "transient"
	default:
		return "other"
	}
}

// ErrorClassifier maps driver errors to an [ErrorClass].
type ErrorClassifier interface {
	Classify(err error) ErrorClass
}

// PostgresErrorClassifier implements [ErrorClassifier] for pgx errors.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err as a *pgconn.PgError and inspects its SQLSTATE code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func (c *PostgresErrorClassifier) Classify(err error) ErrorClass {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ClassOther
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ClassUniqueViolation

	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		// Class 40: transaction rollback
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		// Class 57: operator intervention
		pgerrcode.CannotConnectNow:
		return ClassTransient
	}

	return ClassOther
}

// SQLiteErrorClassifier implements [ErrorClassifier] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify inspects the sqlite extended result code.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClass {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ClassOther
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ClassUniqueViolation
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return ClassTransient
	}

	return ClassOther
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
