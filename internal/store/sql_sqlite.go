// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
)

const sqliteScheme = "sqlite://"

// NewConnectSQLite opens a sqlite database. dsn is either "sqlite://path" or
// a native "file:" URI. The pool is limited to one connection so writers are
// serialized and id allocation stays atomic.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", sqliteDSN(dsn))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, dialectSQLite, log), nil
}

// sqliteDSN turns "sqlite://path" into a mattn file URI with foreign keys and
// a busy timeout enabled.
func sqliteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, sqliteScheme) {
		return dsn
	}

	path := strings.TrimPrefix(dsn, sqliteScheme)
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return "file:" + path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, sqliteScheme) || strings.HasPrefix(dsn, "file:")
}
