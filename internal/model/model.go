// Package model defines the core domain types for the event booking system.
package model

import "time"

// FewSeatsThreshold is the largest number of remaining seats for which an
// event is still classified as having only a few seats left.
const FewSeatsThreshold = 10

// User is an entry in the user directory.
// Password is plaintext; the directory is a demo and never authenticates.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Event represents a bookable event.
type Event struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	TotalSeats  int     `json:"totalSeats"`
	BookedSeats int     `json:"bookedSeats"`
	Organizer   string  `json:"organizer"`
}

// SeatsLeft returns the number of available seats. It never goes below zero,
// even when a stored document carries an overbooked counter.
func (e *Event) SeatsLeft() int {
	if left := e.TotalSeats - e.BookedSeats; left > 0 {
		return left
	}
	return 0
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.SeatsLeft() == 0
}

// Availability returns the availability class of the event.
func (e *Event) Availability() Availability {
	return ClassifySeats(e.SeatsLeft())
}

// Availability is the categorical bucket derived from seats left.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityFew       Availability = "few"
	AvailabilityFull      Availability = "full"
)

// ClassifySeats buckets a seats-left count.
func ClassifySeats(seatsLeft int) Availability {
	switch {
	case seatsLeft <= 0:
		return AvailabilityFull
	case seatsLeft <= FewSeatsThreshold:
		return AvailabilityFew
	default:
		return AvailabilityAvailable
	}
}

// Booking associates a user with an event.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	EventID     int64     `json:"eventId"`
	BookingDate time.Time `json:"bookingDate"`
}

// BookingStatus is derived from the booking date; there is no cancellation.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
)

// Status reports pending while the booking date lies in the future relative
// to now, confirmed otherwise.
func (b *Booking) Status(now time.Time) BookingStatus {
	if b.BookingDate.After(now) {
		return BookingPending
	}
	return BookingConfirmed
}
