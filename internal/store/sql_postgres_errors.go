package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassificator turns a driver error into a store error. Integrity
// violations become a [*ConstraintError]; anything else is returned as is.
type ErrorClassificator interface {
	Classify(err error) error
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// postgresConstraintFields maps the constraint names declared in the
// migrations to the field they guard.
var postgresConstraintFields = map[string]string{
	"user_username_key": "username",
	"user_email_key":    "email",
	"item_name_key":     "name",
	"item_user_id_fkey": "user_id",
}

// Classify implements [ErrorClassificator]. Class 23 codes:
//   - 23505 unique_violation → ErrUniqueViolation
//   - 23503 foreign_key_violation → ErrForeignKeyViolation
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &ConstraintError{Kind: ErrUniqueViolation, Field: postgresConstraintField(pgErr), Err: err}
	case pgerrcode.ForeignKeyViolation:
		return &ConstraintError{Kind: ErrForeignKeyViolation, Field: postgresConstraintField(pgErr), Err: err}
	}

	return err
}

func postgresConstraintField(pgErr *pgconn.PgError) string {
	if field, ok := postgresConstraintFields[pgErr.ConstraintName]; ok {
		return field
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}

	// <table>_<column>_key / <table>_<column>_fkey
	name := strings.TrimSuffix(strings.TrimSuffix(pgErr.ConstraintName, "_fkey"), "_key")
	if _, column, ok := strings.Cut(name, "_"); ok {
		return column
	}
	return ""
}
