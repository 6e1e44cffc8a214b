package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatsLeft(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		left   int
		class  Availability
		isFull bool
	}{
		{"plenty", Event{TotalSeats: 100, BookedSeats: 2}, 98, AvailabilityAvailable, false},
		{"boundary eleven", Event{TotalSeats: 20, BookedSeats: 9}, 11, AvailabilityAvailable, false},
		{"boundary ten", Event{TotalSeats: 20, BookedSeats: 10}, 10, AvailabilityFew, false},
		{"one left", Event{TotalSeats: 50, BookedSeats: 49}, 1, AvailabilityFew, false},
		{"full", Event{TotalSeats: 30, BookedSeats: 30}, 0, AvailabilityFull, true},
		{"overbooked document", Event{TotalSeats: 30, BookedSeats: 31}, 0, AvailabilityFull, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.left, tt.event.SeatsLeft())
			assert.Equal(t, tt.class, tt.event.Availability())
			assert.Equal(t, tt.isFull, tt.event.IsFull())
		})
	}
}

func TestBookingStatus(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	past := Booking{BookingDate: now.Add(-time.Hour)}
	assert.Equal(t, BookingConfirmed, past.Status(now))

	same := Booking{BookingDate: now}
	assert.Equal(t, BookingConfirmed, same.Status(now))

	future := Booking{BookingDate: now.Add(time.Minute)}
	assert.Equal(t, BookingPending, future.Status(now))
}

func TestNewEventView(t *testing.T) {
	v := NewEventView(Event{ID: 102, TotalSeats: 50, BookedSeats: 45})
	assert.Equal(t, int64(102), v.ID)
	assert.Equal(t, 5, v.SeatsLeft)
	assert.Equal(t, AvailabilityFew, v.Availability)
}
