package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/mock"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/models"
)

func newTestItemSvc(t *testing.T, ctrl *gomock.Controller) (ItemService, *mock.MockItemRepository) {
	t.Helper()
	repo := mock.NewMockItemRepository(ctrl)
	return NewItemService(repo, logger.Nop()), repo
}

func TestItemService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	in := models.Item{Name: "pen", Price: 3, UserID: 1}
	out := in
	out.ItemID = 10
	repo.EXPECT().CreateItem(ctx, in).Return(out, nil)

	got, err := svc.CreateItem(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestItemService_CreateItem_UnknownOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	fk := &store.ConstraintError{Kind: store.ErrForeignKeyViolation, Field: "user_id", Err: errors.New("driver")}
	repo.EXPECT().CreateItem(ctx, gomock.Any()).Return(models.Item{}, fk)

	_, err := svc.CreateItem(ctx, models.Item{Name: "pen", UserID: 99})
	require.ErrorIs(t, err, store.ErrForeignKeyViolation)

	var constraintErr *store.ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	assert.Equal(t, "user_id", constraintErr.Field)
}

func TestItemService_ListItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().ListItems(ctx).Return([]models.Item{}, nil)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemService_GetItem_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindItemByID(ctx, int64(4)).Return(models.Item{}, store.ErrItemNotFound)

	_, err := svc.GetItem(ctx, 4)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemService_UpdateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	price := int64(0)
	update := models.ItemUpdate{ItemID: 4, Price: &price}
	repo.EXPECT().UpdateItem(ctx, update).Return(models.Item{ItemID: 4, Name: "pen", Price: 0}, nil)

	item, err := svc.UpdateItem(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Price)
}

func TestItemService_DeleteItem_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestItemSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().DeleteItem(ctx, int64(4)).Return(store.ErrItemNotFound)

	assert.ErrorIs(t, svc.DeleteItem(ctx, 4), store.ErrItemNotFound)
}
