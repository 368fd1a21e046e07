// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the persistence gateway of the server: CRUD access to the
// "user" and "item" tables over database/sql, for PostgreSQL (pgx) and
// SQLite (mattn/go-sqlite3).
//
// Queries are built with squirrel using the placeholder format of the
// connected dialect. Every write runs in its own transaction. Driver errors
// for integrity violations are classified into [*ConstraintError] values and
// empty results into [ErrUserNotFound] / [ErrItemNotFound].
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/migrations"
)

// DB is a connection pool together with everything needed to talk to its
// dialect.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database named by cfg.DSN:
//   - "postgres://" or "postgresql://" → PostgreSQL through pgx;
//   - "sqlite://<path>", "file:<path>" or ":memory:" → SQLite.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewConnectPostgres(ctx, dsn, log)
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return NewConnectSQLite(ctx, dsn, log)
	default:
		log.Error().Str("func", "NewDB").Msg("unsupported database DSN")
		return nil, ErrUnsupportedDSN
	}
}

// Dialect returns the migration dialect of the connection.
func (db *DB) Dialect() migrations.Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the connection's dialect.
func (db *DB) Migrate() error {
	dialect := db.Dialect()
	if err := migrations.Migrate(db.DB, dialect); err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Str("dialect", string(dialect)).Msg("error applying migrations")
		return err
	}

	db.logger.Info().Str("func", "*DB.Migrate").Str("dialect", string(dialect)).Msg("migrations applied")
	return nil
}

// classify maps a driver error to a store error.
func (db *DB) classify(err error) error {
	if db.errorClassificator == nil {
		return err
	}
	return db.errorClassificator.Classify(err)
}

// withTx runs fn inside a transaction that is committed when fn returns nil
// and rolled back otherwise.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
