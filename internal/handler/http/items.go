package http

import (
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req models.ItemCreateRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.CreateItem(r.Context(), req.ToItem())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewItemView(item), app.MsgItemCreated, http.StatusCreated)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.ItemService.ListItems(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewItemViews(items), app.MsgOperationSuccessful, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.GetItem(r.Context(), itemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewItemView(item), app.MsgOperationSuccessful, http.StatusOK)
}

// updateItem answers 404 for an unknown id before the body is looked at.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err = h.services.ItemService.GetItem(ctx, itemID); err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.ItemUpdateRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.UpdateItem(ctx, req.ToItemUpdate(itemID))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewItemView(item), app.MsgItemUpdated, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.ItemService.DeleteItem(r.Context(), itemID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, nil, app.MsgItemDeleted, http.StatusNoContent)
}
