// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{name: "nil", err: nil, want: ClassOther},
		{name: "plain error", err: errors.New("x"), want: ClassOther},
		{name: "unique", err: pgError(pgerrcode.UniqueViolation), want: ClassUniqueViolation},
		{name: "wrapped unique", err: fmt.Errorf("ctx: %w", pgError(pgerrcode.UniqueViolation)), want: ClassUniqueViolation},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: ClassTransient},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: ClassTransient},
		{name: "syntax", err: pgError(pgerrcode.SyntaxError), want: ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{name: "plain error", err: errors.New("x"), want: ClassOther},
		{name: "unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: ClassUniqueViolation},
		{name: "primary key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, want: ClassUniqueViolation},
		{name: "not null", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, want: ClassOther},
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: ClassTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "unique_violation", ClassUniqueViolation.String())
	assert.Equal(t, "transient", ClassTransient.String())
	assert.Equal(t, "other", ClassOther.String())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:broker.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("sqlite://broker.db"))
	assert.Equal(t, "file:broker.db?mode=memory&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("sqlite://broker.db?mode=memory"))
	assert.Equal(t, "file::memory:", sqliteDSN("file::memory:"))
	assert.True(t, isSQLiteDSN("sqlite://x"))
	assert.True(t, isSQLiteDSN("file:x"))
	assert.False(t, isSQLiteDSN("postgres://localhost/db"))
}
