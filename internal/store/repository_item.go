package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// itemRepository is the database/sql implementation of [ItemRepository]
// over the "item" table.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		item        models.Item
		description sql.NullString
	)

	if err := row.Scan(&item.ItemID, &item.Name, &item.Price, &description, &item.UserID); err != nil {
		return models.Item{}, err
	}
	if description.Valid {
		item.Description = &description.String
	}

	return item, nil
}

// CreateItem inserts item inside a transaction and returns the stored row.
//
// Error handling:
//   - duplicate name → [*ConstraintError] wrapping [ErrUniqueViolation];
//   - unknown owner → [*ConstraintError] wrapping [ErrForeignKeyViolation];
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.db.builder, item)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("failed to build query")
		return models.Item{}, err
	}

	var created models.Item
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		var scanErr error
		created, scanErr = scanItem(tx.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		classified := r.db.classify(err)
		var constraintErr *ConstraintError
		if errors.As(classified, &constraintErr) {
			log.Warn().Err(err).Str("func", "*itemRepository.CreateItem").Str("field", constraintErr.Field).Msg("item violates a constraint")
			return models.Item{}, classified
		}

		log.Err(err).Str("func", "*itemRepository.CreateItem").Str("name", item.Name).Msg("failed to insert item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Str("func", "*itemRepository.CreateItem").Int64("item_id", created.ItemID).Msg("item created")
	return created, nil
}

// FindItemByID returns the item with the given id or [ErrItemNotFound].
func (r *itemRepository) FindItemByID(ctx context.Context, itemID int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemByIDQuery(r.db.builder, itemID)
	if err != nil {
		return models.Item{}, err
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", "*itemRepository.FindItemByID").Int64("item_id", itemID).Msg("item not found")
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.FindItemByID").Int64("item_id", itemID).Msg("failed to query item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// ListItems returns every item ordered by id; never nil.
func (r *itemRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsQuery(r.db.builder)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ListItems").Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, 16)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*itemRepository.ListItems").Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*itemRepository.ListItems").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// UpdateItem applies the non-nil fields of update inside a transaction and
// returns the updated row. An empty update returns the current row.
func (r *itemRepository) UpdateItem(ctx context.Context, update models.ItemUpdate) (models.Item, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.FindItemByID(ctx, update.ItemID)
	}

	query, args, err := buildUpdateItemQuery(r.db.builder, update)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("failed to build query")
		return models.Item{}, err
	}

	var updated models.Item
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		var scanErr error
		updated, scanErr = scanItem(tx.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		classified := r.db.classify(err)
		if errors.Is(classified, ErrUniqueViolation) {
			log.Warn().Err(err).Str("func", "*itemRepository.UpdateItem").Int64("item_id", update.ItemID).Msg("update violates a constraint")
			return models.Item{}, classified
		}

		log.Err(err).Str("func", "*itemRepository.UpdateItem").Int64("item_id", update.ItemID).Msg("failed to update item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Str("func", "*itemRepository.UpdateItem").Int64("item_id", updated.ItemID).Msg("item updated")
	return updated, nil
}

// DeleteItem removes the item inside a transaction. A missing item yields
// [ErrItemNotFound].
func (r *itemRepository) DeleteItem(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemQuery(r.db.builder, itemID)
	if err != nil {
		return err
	}

	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		return execAffectingOne(ctx, tx, query, args, ErrItemNotFound)
	})
	if err != nil {
		if !errors.Is(err, ErrItemNotFound) {
			log.Err(err).Str("func", "*itemRepository.DeleteItem").Int64("item_id", itemID).Msg("failed to delete item")
		}
		return err
	}

	log.Info().Str("func", "*itemRepository.DeleteItem").Int64("item_id", itemID).Msg("item deleted")
	return nil
}
