// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
)

// MemoryDSN selects the in-process backend.
const MemoryDSN = "memory"

// Storages bundles the repositories consumed by the service layer.
type Storages struct {
	UserRepository   UserRepository
	ClientRepository ClientRepository
	TokenRepository  TokenRepository

	db *DB
}

// NewStorages picks a backend from cfg.DSN, connects, applies migrations and
// builds the repositories:
//   - "memory"                      → [MemoryStorage]
//   - "sqlite://path" or "file:..." → mattn/go-sqlite3
//   - anything else                 → PostgreSQL through pgx
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	if cfg.DSN == MemoryDSN {
		log.Info().Str("func", "NewStorages").Msg("using in-memory storage")
		return NewMemoryStorages(NewMemoryStorage()), nil
	}

	var (
		db  *DB
		err error
	)
	if isSQLiteDSN(cfg.DSN) {
		db, err = NewConnectSQLite(ctx, cfg.DSN, log)
	} else {
		db, err = NewConnectPostgres(ctx, cfg.DSN, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting storage: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewSQLStorages(db, log), nil
}

// NewSQLStorages builds SQL repositories over an open connection.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		ClientRepository: NewClientRepository(db, log),
		TokenRepository:  NewTokenRepository(db, log),
		db:               db,
	}
}

// NewMemoryStorages exposes one [MemoryStorage] through all repositories.
func NewMemoryStorages(m *MemoryStorage) *Storages {
	return &Storages{
		UserRepository:   m,
		ClientRepository: m,
		TokenRepository:  m,
	}
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
