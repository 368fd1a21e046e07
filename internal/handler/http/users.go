package http

import (
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// createUser creates an account with the default role. Unlike register, a
// "role" other than "user" is rejected.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req.AsRegisterRequest(), false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewUserView(user), app.MsgUserCreated, http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewUserViews(users), app.MsgOperationSuccessful, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewUserView(user), app.MsgOperationSuccessful, http.StatusOK)
}

// updateUser answers 404 for an unknown id before the body is looked at.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err = h.services.UserService.GetUser(ctx, userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UserUpdateRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(ctx, userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, models.NewUserView(user), app.MsgUserUpdated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, nil, app.MsgUserDeleted, http.StatusNoContent)
}
