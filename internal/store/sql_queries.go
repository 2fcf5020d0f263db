// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-broker/models"
)

const (
	sequencesTable = "id_sequences"

	usersSequence   = "users"
	clientsSequence = "clients"
)

var (
	userColumns   = []string{"user_id", "username", "password_hash", "role", "created_at"}
	clientColumns = []string{"client_id", "name", "secret_hash", "created_at"}
	tokenColumns  = []string{"token", "user_id", "client_id", "role", "created_at"}
)

// buildNextIDQuery increments a counter row and returns its new value. The
// row lock taken by UPDATE makes concurrent callers observe distinct values.
func buildNextIDQuery(b sq.StatementBuilderType, sequence string) (string, []any, error) {
	return b.Update(sequencesTable).
		Set("value", sq.Expr("value + 1")).
		Where(sq.Eq{"name": sequence}).
		Suffix("RETURNING value").
		ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.PasswordHash, user.Role, user.CreatedAt).
		ToSql()
}

func buildSelectUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildInsertClientQuery(b sq.StatementBuilderType, client models.Client) (string, []any, error) {
	return b.Insert(models.Client{}.TableName()).
		Columns(clientColumns...).
		Values(client.ClientID, client.Name, client.SecretHash, client.CreatedAt).
		ToSql()
}

func buildUpdateClientSecretQuery(b sq.StatementBuilderType, clientID int64, secretHash string) (string, []any, error) {
	return b.Update(models.Client{}.TableName()).
		Set("secret_hash", secretHash).
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
}

func buildSelectClientByNameQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select(clientColumns...).
		From(models.Client{}.TableName()).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func buildInsertTokenQuery(b sq.StatementBuilderType, token models.Token) (string, []any, error) {
	return b.Insert(models.Token{}.TableName()).
		Columns(tokenColumns...).
		Values(token.Token, token.UserID, token.ClientID, token.Role, token.CreatedAt).
		ToSql()
}

func buildSelectTokenQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Select(tokenColumns...).
		From(models.Token{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildSelectTokenByGrantQuery(b sq.StatementBuilderType, userID, clientID int64, role string) (string, []any, error) {
	return b.Select(tokenColumns...).
		From(models.Token{}.TableName()).
		Where(sq.Eq{"user_id": userID, "client_id": clientID, "role": role}).
		ToSql()
}

func buildDeleteTokenQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Delete(models.Token{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildDeleteExpiredTokensQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(models.Token{}.TableName()).
		Where(sq.Lt{"created_at": before}).
		ToSql()
}
