package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/models"
)

var itemRowColumns = []string{"id", "name", "price", "description", "user_id"}

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return &itemRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateItem_Success(t *testing.T) {
	repo, mock := newTestItemRepo(t)
	item := models.Item{Name: "pen", Price: 3, Description: strPtr("blue"), UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO item`)).
		WithArgs("pen", int64(3), "blue", int64(1)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(10, "pen", 3, "blue", 1))
	mock.ExpectCommit()

	created, err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ItemID)
	require.NotNil(t, created.Description)
	assert.Equal(t, "blue", *created.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItem_NullDescription(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO item`)).
		WithArgs("pen", int64(3), nil, int64(1)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(10, "pen", 3, nil, 1))
	mock.ExpectCommit()

	created, err := repo.CreateItem(context.Background(), models.Item{Name: "pen", Price: 3, UserID: 1})
	require.NoError(t, err)
	assert.Nil(t, created.Description)
}

func TestCreateItem_ForeignKeyViolation(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO item`)).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation, "item_user_id_fkey"))
	mock.ExpectRollback()

	_, err := repo.CreateItem(context.Background(), models.Item{Name: "pen", UserID: 99})

	require.ErrorIs(t, err, ErrForeignKeyViolation)
	var constraintErr *ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	assert.Equal(t, "user_id", constraintErr.Field)
}

func TestCreateItem_DuplicateName(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO item`)).
		WillReturnError(pgError(pgerrcode.UniqueViolation, "item_name_key"))
	mock.ExpectRollback()

	_, err := repo.CreateItem(context.Background(), models.Item{Name: "pen", UserID: 1})
	assert.ErrorIs(t, err, ErrUniqueViolation)
}

func TestFindItemByID_NotFound(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM item WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	_, err := repo.FindItemByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItems(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, description, user_id FROM item ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(1, "a", 1, nil, 1).
			AddRow(2, "b", 2, "desc", 1))

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Description)
	assert.Equal(t, "desc", *items[1].Description)
}

func TestListItems_QueryError(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM item`)).WillReturnError(errors.New("down"))

	_, err := repo.ListItems(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUpdateItem_Partial(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE item SET price = $1 WHERE id = $2 RETURNING`)).
		WithArgs(int64(42), int64(7)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(7, "pen", 42, nil, 1))
	mock.ExpectCommit()

	item, err := repo.UpdateItem(context.Background(), models.ItemUpdate{ItemID: 7, Price: int64Ptr(42)})
	require.NoError(t, err)
	assert.Equal(t, int64(42), item.Price)
	assert.Equal(t, "pen", item.Name)
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE item`)).WillReturnRows(sqlmock.NewRows(itemRowColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateItem(context.Background(), models.ItemUpdate{ItemID: 7, Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM item WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteItem(context.Background(), 7))
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM item`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.DeleteItem(context.Background(), 7), ErrItemNotFound)
}

func TestDeleteItem_ExecError(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM item`)).WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.DeleteItem(context.Background(), 7), ErrExecutingStatement)
}
