package model

// CreateEventRequest is the payload for creating a new event.
// Date accepts "2006-01-02" or "Jan 2, 2006"; Time accepts "15:04" or "3:04 PM".
type CreateEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Time        string  `json:"time" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	TotalSeats  int     `json:"totalSeats" validate:"gte=1"`
	Image       string  `json:"image"`
}

// DeleteEventRequest carries the admin secret required to delete an event.
type DeleteEventRequest struct {
	Password string `json:"password"`
}

// BookEventRequest is the payload for booking a seat.
type BookEventRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

// UserRequest is the payload for creating or updating a user.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DateFilter selects events by calendar date.
type DateFilter string

const (
	DateAll      DateFilter = "all"
	DateUpcoming DateFilter = "upcoming"
	DateToday    DateFilter = "today"
)

// AvailabilityFilter selects events by seats left. "available" also matches
// events with only a few seats left.
type AvailabilityFilter string

const (
	AvailabilityFilterAll       AvailabilityFilter = "all"
	AvailabilityFilterAvailable AvailabilityFilter = "available"
	AvailabilityFilterFew       AvailabilityFilter = "few"
	AvailabilityFilterFull      AvailabilityFilter = "full"
)

// EventFilter narrows ListEvents. Zero values mean "all".
type EventFilter struct {
	Text         string             `json:"q"`
	Availability AvailabilityFilter `json:"availability" validate:"omitempty,oneof=all available few full"`
	Date         DateFilter         `json:"date" validate:"omitempty,oneof=all upcoming today"`
}

// BookingFilter narrows ListBookings. Zero ids match everything.
type BookingFilter struct {
	UserID  int64
	EventID int64
}
