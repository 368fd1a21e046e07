package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-crud-keeper/models"
)

const (
	userTable = `"user"`
	itemTable = "item"
)

var (
	userColumns = []string{"id", "username", "email", "password", "role"}
	itemColumns = []string{"id", "name", "price", "description", "user_id"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── user ──────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return toSQL(b.Insert(userTable).
		Columns("username", "email", "password", "role").
		Values(user.Username, user.Email, user.PasswordHash, user.Role).
		Suffix(returning(userColumns)))
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return toSQL(b.Select(userColumns...).From(userTable).Where(sq.Eq{"id": userID}))
}

func buildSelectUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return toSQL(b.Select(userColumns...).From(userTable).Where(sq.Eq{"username": username}))
}

func buildSelectUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return toSQL(b.Select(userColumns...).From(userTable).OrderBy("id"))
}

// buildUpdateUserQuery sets only the non-nil fields of update. It must not be
// called with an empty update.
func buildUpdateUserQuery(b sq.StatementBuilderType, update models.UserUpdate) (string, []any, error) {
	query := b.Update(userTable)

	if update.Username != nil {
		query = query.Set("username", *update.Username)
	}
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.PasswordHash != nil {
		query = query.Set("password", *update.PasswordHash)
	}

	return toSQL(query.Where(sq.Eq{"id": update.UserID}).Suffix(returning(userColumns)))
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return toSQL(b.Delete(userTable).Where(sq.Eq{"id": userID}))
}

// ── item ──────────────────────────────────────────────────────────────────────

func buildInsertItemQuery(b sq.StatementBuilderType, item models.Item) (string, []any, error) {
	return toSQL(b.Insert(itemTable).
		Columns("name", "price", "description", "user_id").
		Values(item.Name, item.Price, item.Description, item.UserID).
		Suffix(returning(itemColumns)))
}

func buildSelectItemByIDQuery(b sq.StatementBuilderType, itemID int64) (string, []any, error) {
	return toSQL(b.Select(itemColumns...).From(itemTable).Where(sq.Eq{"id": itemID}))
}

func buildSelectItemsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return toSQL(b.Select(itemColumns...).From(itemTable).OrderBy("id"))
}

// buildUpdateItemQuery sets only the non-nil fields of update. It must not be
// called with an empty update.
func buildUpdateItemQuery(b sq.StatementBuilderType, update models.ItemUpdate) (string, []any, error) {
	query := b.Update(itemTable)

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Price != nil {
		query = query.Set("price", *update.Price)
	}
	if update.Description != nil {
		query = query.Set("description", *update.Description)
	}

	return toSQL(query.Where(sq.Eq{"id": update.ItemID}).Suffix(returning(itemColumns)))
}

func buildDeleteItemQuery(b sq.StatementBuilderType, itemID int64) (string, []any, error) {
	return toSQL(b.Delete(itemTable).Where(sq.Eq{"id": itemID}))
}
