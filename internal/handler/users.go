package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
)

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req model.UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
