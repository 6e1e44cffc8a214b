// Package ticket renders booking tickets as QR codes.
package ticket

import (
	"encoding/json"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/skip2/go-qrcode"
)

// Size is the edge length of the rendered PNG in pixels.
const Size = 256

// Payload is what the QR code encodes.
type Payload struct {
	BookingID   int64     `json:"bookingId"`
	EventID     int64     `json:"eventId"`
	UserID      int64     `json:"userId"`
	Event       string    `json:"event"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	BookingDate time.Time `json:"bookingDate"`
}

func NewPayload(b model.BookingView) Payload {
	return Payload{
		BookingID:   b.ID,
		EventID:     b.Event.ID,
		UserID:      b.User.ID,
		Event:       b.Event.Title,
		Date:        b.Event.Date,
		Time:        b.Event.Time,
		BookingDate: b.BookingDate,
	}
}

// Encode returns the PNG QR code for b.
func Encode(b model.BookingView) ([]byte, error) {
	data, err := json.Marshal(NewPayload(b))
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, Size)
}
