package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/models"
)

type itemService struct {
	itemRepository store.ItemRepository

	logger *logger.Logger
}

func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		logger:         logger,
	}
}

// CreateItem persists item. A duplicate name or an unknown owner surface as
// a wrapped *store.ConstraintError.
func (s *itemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	created, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*itemService.CreateItem").
			Str("name", item.Name).
			Int64("user_id", item.UserID).
			Msg("item creation failed")
		return models.Item{}, fmt.Errorf("item creation failed: %w", err)
	}

	return created, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepository.ListItems(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.ListItems").Msg("listing items failed")
		return nil, fmt.Errorf("listing items failed: %w", err)
	}

	return items, nil
}

func (s *itemService) GetItem(ctx context.Context, itemID int64) (models.Item, error) {
	item, err := s.itemRepository.FindItemByID(ctx, itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("item lookup failed: %w", err)
	}

	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, update models.ItemUpdate) (models.Item, error) {
	item, err := s.itemRepository.UpdateItem(ctx, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.UpdateItem").Int64("id", update.ItemID).Msg("item update failed")
		return models.Item{}, fmt.Errorf("item update failed: %w", err)
	}

	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, itemID int64) error {
	if err := s.itemRepository.DeleteItem(ctx, itemID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.DeleteItem").Int64("id", itemID).Msg("item deletion failed")
		return fmt.Errorf("item deletion failed: %w", err)
	}

	return nil
}
