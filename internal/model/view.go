package model

import "time"

// EventView is an event with its derived seat fields.
type EventView struct {
	Event
	SeatsLeft    int          `json:"seatsLeft"`
	Availability Availability `json:"availability"`
}

// NewEventView derives the seat fields of e.
func NewEventView(e Event) EventView {
	return EventView{
		Event:        e,
		SeatsLeft:    e.SeatsLeft(),
		Availability: e.Availability(),
	}
}

// UserView is the public projection of a user: no password, plus the number
// of live bookings the user holds.
type UserView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	EventsBooked int    `json:"eventsBooked"`
}

// BookingView joins a booking with its event and user.
type BookingView struct {
	ID          int64         `json:"id"`
	BookingDate time.Time     `json:"bookingDate"`
	Status      BookingStatus `json:"status"`
	Event       BookingEvent  `json:"event"`
	User        BookingUser   `json:"user"`
}

// BookingEvent is the event summary shown on a booking.
type BookingEvent struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// BookingUser is the user summary shown on a booking.
type BookingUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
