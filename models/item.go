// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Item is the storage record of the "item" table.
type Item struct {
	// ItemID is the server-assigned primary key.
	ItemID int64

	// Name is unique across all items (at most 30 characters).
	Name string

	// Price is an integer amount; the unit is up to the client.
	Price int64

	// Description is optional and stored as NULL when absent.
	Description *string

	// UserID references the owning user. Deleting the owner deletes the item.
	UserID int64
}

// ItemView is the outbound representation of an [Item].
type ItemView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Description *string `json:"description"`
	UserID      int64   `json:"user_id"`
}

// NewItemView maps a storage record to its wire form.
func NewItemView(i Item) ItemView {
	return ItemView{
		ID:          i.ItemID,
		Name:        i.Name,
		Price:       i.Price,
		Description: i.Description,
		UserID:      i.UserID,
	}
}

// NewItemViews maps a slice of storage records; never returns nil.
func NewItemViews(items []Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, i := range items {
		views = append(views, NewItemView(i))
	}
	return views
}

// ItemCreateRequest is the payload of POST /api/item. The identifier is
// server-assigned and therefore not accepted here.
type ItemCreateRequest struct {
	Name        *string `json:"name,omitempty" validate:"required,min=1,max=30"`
	Price       *int64  `json:"price,omitempty" validate:"required"`
	Description *string `json:"description,omitempty"`
	UserID      *int64  `json:"user_id,omitempty" validate:"required"`
}

// ToItem builds a storage record from a validated create payload.
func (r ItemCreateRequest) ToItem() Item {
	item := Item{
		Name:        deref(r.Name),
		Description: r.Description,
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.UserID != nil {
		item.UserID = *r.UserID
	}
	return item
}

// ItemUpdateRequest is the payload of PUT /api/items/{id}. Absent fields are
// left unchanged.
type ItemUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=30"`
	Price       *int64  `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToItemUpdate converts the payload into a storage-level partial update of
// the item identified by itemID.
func (r ItemUpdateRequest) ToItemUpdate(itemID int64) ItemUpdate {
	return ItemUpdate{
		ItemID:      itemID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
	}
}

// ItemUpdate is the storage-level partial update of an item row.
type ItemUpdate struct {
	ItemID      int64
	Name        *string
	Price       *int64
	Description *string
}

// IsEmpty reports whether no column would change.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil
}
