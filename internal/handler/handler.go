// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/event-booking/internal/auth"
	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/Shivanand-hulikatti/event-booking/internal/service"
	"github.com/go-chi/chi/v5"
)

// Handler holds all HTTP handlers for the event booking API.
type Handler struct {
	events   *service.EventService
	bookings *service.BookingService
	users    *service.UserService
	log      *logger.Logger
}

// New constructs a Handler.
func New(
	events *service.EventService,
	bookings *service.BookingService,
	users *service.UserService,
	log *logger.Logger,
) *Handler {
	return &Handler{events: events, bookings: bookings, users: users, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// writeServiceError maps service and repository errors onto HTTP responses.
// notFound is the message used for repository.ErrNotFound.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrEventFull):
		writeError(w, http.StatusConflict, "event is fully booked")
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, model.ErrorResponse{
			Error:  "not allowed",
			Fields: map[string]string{"password": "Incorrect password"},
		})
	default:
		h.log.Error("API", r.Method+" "+r.URL.Path+": "+err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
