package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no row of the "user" table matches.
	ErrUserNotFound = errors.New("user was not found")

	// ErrItemNotFound is returned when no row of the "item" table matches.
	ErrItemNotFound = errors.New("item was not found")

	// ErrUniqueViolation is returned (inside a [*ConstraintError]) when a
	// write would duplicate a unique column.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned (inside a [*ConstraintError]) when a
	// write references a row that does not exist.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")

	// ErrUnsupportedDSN is returned when the DSN names no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// ConstraintError describes a write rejected by an integrity constraint.
// It unwraps to both its kind ([ErrUniqueViolation] or
// [ErrForeignKeyViolation]) and the driver error.
type ConstraintError struct {
	// Kind is ErrUniqueViolation or ErrForeignKeyViolation.
	Kind error
	// Field is the JSON/column name of the offending field, if known.
	Field string
	// Err is the underlying driver error.
	Err error
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + " on " + e.Field
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
