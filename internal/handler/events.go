package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
)

// ListEvents handles GET /events?q=&availability=&date=
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EventFilter{
		Text:         q.Get("q"),
		Availability: model.AvailabilityFilter(q.Get("availability")),
		Date:         model.DateFilter(q.Get("date")),
	}

	events, err := h.events.ListEvents(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, model.NewEventView(*event))
}

// GetEvent handles GET /events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
// The body carries the admin password; a wrong password answers 403 with a
// field message so the client can keep its form open and retry.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	// An empty body is an empty password; the authorizer rejects it.
	var req model.DeleteEventRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.events.DeleteEvent(r.Context(), id, req.Password); err != nil {
		h.writeServiceError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BookEvent handles POST /events/{id}/bookings
func (h *Handler) BookEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req model.BookEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.bookings.BookEvent(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err, "event or user not found")
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}
