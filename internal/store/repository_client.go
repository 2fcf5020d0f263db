// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

type clientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewClientRepository constructs a SQL [ClientRepository].
func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("creating client repository")
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

// SaveClient upserts by name inside one transaction: an existing client keeps
// its id and creation time and receives the new secret hash; a new client
// gets an id from the "clients" sequence.
func (r *clientRepository) SaveClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	var saved models.Client
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := r.findByName(ctx, tx, client.Name)
		switch {
		case err == nil:
			query, args, err := buildUpdateClientSecretQuery(r.db.builder, existing.ClientID, client.SecretHash)
			if err != nil {
				return persistError(ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return persistError(ErrExecutingStatement, err)
			}
			existing.SecretHash = client.SecretHash
			saved = existing
			return nil
		case !errors.Is(err, ErrClientNotFound):
			return err
		}

		client.ClientID, err = r.db.nextID(ctx, tx, clientsSequence)
		if err != nil {
			return err
		}

		query, args, err := buildInsertClientQuery(r.db.builder, client)
		if err != nil {
			return persistError(ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return persistError(ErrExecutingStatement, err)
		}
		saved = client
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.SaveClient").Str("client", client.Name).Msg("error saving client")
		return models.Client{}, err
	}

	return saved, nil
}

// FindClientByName returns the client registered under name.
func (r *clientRepository) FindClientByName(ctx context.Context, name string) (models.Client, error) {
	client, err := r.findByName(ctx, r.db, name)
	if err != nil && !errors.Is(err, ErrClientNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*clientRepository.FindClientByName").Msg("error selecting client")
	}

	return client, err
}

func (r *clientRepository) findByName(ctx context.Context, q queryer, name string) (models.Client, error) {
	query, args, err := buildSelectClientByNameQuery(r.db.builder, name)
	if err != nil {
		return models.Client{}, persistError(ErrBuildingSQLQuery, err)
	}

	var client models.Client
	err = q.QueryRowContext(ctx, query, args...).
		Scan(&client.ClientID, &client.Name, &client.SecretHash, &client.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, persistError(ErrScanningRow, err)
	}

	return client, nil
}
