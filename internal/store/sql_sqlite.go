package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/migrations"
)

// NewConnectSQLite opens a SQLite database with foreign keys enforced.
//
// In-memory databases live on a single connection, since every new
// connection to ":memory:" would see an empty database.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	driverDSN, inMemory := sqliteDriverDSN(dsn)

	conn, err := sql.Open("sqlite3", driverDSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if inMemory {
		conn.SetMaxOpenConns(1)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Bool("in_memory", inMemory).Msg("connected to database successfully")

	return newSQLiteDB(conn, log), nil
}

func newSQLiteDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            migrations.SQLite,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}
}

// sqliteDriverDSN converts a configured DSN into a go-sqlite3 one with
// foreign keys switched on, and reports whether it is in-memory.
func sqliteDriverDSN(dsn string) (string, bool) {
	switch {
	case dsn == ":memory:":
		dsn = "file::memory:"
	case strings.HasPrefix(dsn, "sqlite://"):
		dsn = "file:" + strings.TrimPrefix(dsn, "sqlite://")
	}

	inMemory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")

	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	return dsn, inMemory
}
