// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

func newTestTokenRepo(t *testing.T) (*tokenRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &tokenRepository{db: db, logger: logger.Nop()}, mock
}

func TestAddToken(t *testing.T) {
	now := time.Now()
	token := models.Token{Token: "tok", UserID: 1, ClientID: 2, Role: "client", CreatedAt: now}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "stored"},
		{name: "grant taken", execErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrTokenAlreadyIssued},
		{name: "driver failure", execErr: errors.New("boom"), wantErr: ErrPersistFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestTokenRepo(t)

			exp := mock.ExpectExec("INSERT INTO tokens").
				WithArgs("tok", int64(1), int64(2), "client", now)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			got, err := repo.AddToken(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, token, got)
		})
	}
}

func TestFindToken(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT token, user_id, client_id, role, created_at FROM tokens").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("tok", 1, 2, "admin", now))
	mock.ExpectQuery("SELECT (.+) FROM tokens").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.FindToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, models.Token{Token: "tok", UserID: 1, ClientID: 2, Role: "admin", CreatedAt: now}, got)

	_, err = repo.FindToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestFindTokenByGrant(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tokens WHERE client_id = \\$1 AND role = \\$2 AND user_id = \\$3").
		WithArgs(int64(2), "client", int64(1)).
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("tok", 1, 2, "client", time.Now()))

	got, err := repo.FindTokenByGrant(context.Background(), 1, 2, "client")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

func TestDeleteToken(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectExec("DELETE FROM tokens WHERE token").
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM tokens WHERE token").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteToken(context.Background(), "tok"))
	assert.ErrorIs(t, repo.DeleteToken(context.Background(), "gone"), ErrTokenNotFound)
}

func TestDeleteExpiredTokens(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	before := time.Now()

	mock.ExpectExec("DELETE FROM tokens WHERE created_at <").
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpiredTokens(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
