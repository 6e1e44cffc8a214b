package repository

import (
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
)

// Dataset is a full set of collections.
type Dataset struct {
	Users    []model.User
	Events   []model.Event
	Bookings []model.Booking
}

// Seed returns the bundled demo dataset.
func Seed() *Dataset {
	return &Dataset{
		Users: []model.User{
			{ID: 1, Name: "Aditi Sharma", Email: "aditi.sharma@example.com"},
			{ID: 2, Name: "Rahul Verma", Email: "rahul.verma@example.com"},
			{ID: 3, Name: "Priya Patel", Email: "priya.patel@example.com"},
		},
		Events: []model.Event{
			{
				ID:          101,
				Title:       "Tech Summit 2025",
				Description: "Join us for an exciting tech conference with industry leaders. Experience cutting-edge technologies and network with professionals.",
				Date:        "Jul 15, 2025",
				Time:        "10:00 AM",
				Location:    "Dubai",
				Price:       541,
				Image:       "/techfest.png",
				TotalSeats:  100,
				BookedSeats: 2,
				Organizer:   "Gullie Global Community Events",
			},
			{
				ID:          102,
				Title:       "Startup Networking",
				Description: "Network with fellow entrepreneurs and investors. Learn about innovative startup ideas and explore collaboration opportunities.",
				Date:        "Jul 20, 2025",
				Time:        "2:00 PM",
				Location:    "Silicon Valley",
				Price:       0,
				Image:       "/startupTalk.png",
				TotalSeats:  50,
				BookedSeats: 45,
				Organizer:   "Startup Hub",
			},
			{
				ID:          103,
				Title:       "AI & ML Workshop",
				Description: "Hands-on workshop on the latest AI and Machine Learning technologies. Perfect for developers and tech enthusiasts.",
				Date:        "Aug 1, 2025",
				Time:        "9:00 AM",
				Location:    "New York",
				Price:       299,
				Image:       "/techfest.png",
				TotalSeats:  30,
				BookedSeats: 30,
				Organizer:   "Tech Learning Hub",
			},
		},
		Bookings: []model.Booking{
			{ID: 501, UserID: 1, EventID: 101, BookingDate: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)},
			{ID: 502, UserID: 2, EventID: 102, BookingDate: time.Date(2025, 6, 2, 14, 15, 0, 0, time.UTC)},
			{ID: 503, UserID: 3, EventID: 103, BookingDate: time.Date(2025, 6, 3, 9, 45, 0, 0, time.UTC)},
		},
	}
}
