package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator] using the extended result codes
// SQLITE_CONSTRAINT_UNIQUE and SQLITE_CONSTRAINT_FOREIGNKEY.
func (c *SQLiteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return &ConstraintError{Kind: ErrUniqueViolation, Field: sqliteUniqueField(sqliteErr.Error()), Err: err}
	case sqlite3.ErrConstraintForeignKey:
		// SQLite does not name the violated key; item.user_id is the only one.
		return &ConstraintError{Kind: ErrForeignKeyViolation, Field: "user_id", Err: err}
	}

	return err
}

// sqliteUniqueField extracts "username" from
// "UNIQUE constraint failed: user.username".
func sqliteUniqueField(message string) string {
	_, columns, ok := strings.Cut(message, "constraint failed: ")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(columns, ",")
	_, column, ok := strings.Cut(strings.TrimSpace(first), ".")
	if !ok {
		return ""
	}
	return column
}
