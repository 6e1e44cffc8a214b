package handler

import (
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
)

// ListBookings handles GET /bookings?userId=&eventId=
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var filter model.BookingFilter
	q := r.URL.Query()
	for name, dst := range map[string]*int64{"userId": &filter.UserID, "eventId": &filter.EventID} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "invalid "+name)
			return
		}
		*dst = v
	}

	bookings, err := h.bookings.ListBookings(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// BookingQR handles GET /bookings/{id}/qr and answers a PNG ticket.
func (h *Handler) BookingQR(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	png, err := h.bookings.BookingTicket(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "booking not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
