package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/notify"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/Shivanand-hulikatti/event-booking/internal/ticket"
)

// BookingService is the booking engine.
type BookingService struct {
	*Core
}

func NewBookingService(core *Core) *BookingService {
	return &BookingService{Core: core}
}

// DeriveBookingStatus reports whether b is pending or confirmed at now.
func DeriveBookingStatus(b model.Booking, now time.Time) model.BookingStatus {
	return b.Status(now)
}

// BookEvent books one seat of an event for a user. It fails with
// repository.ErrEventFull, leaving every document untouched, when the event
// has no seats left.
func (s *BookingService) BookEvent(ctx context.Context, eventID int64, req model.BookEventRequest) (*model.Booking, error) {
	var ve ValidationError
	if err := checkStruct(req, &ve); err != nil {
		return nil, err
	}
	if err := ve.err(); err != nil {
		return nil, err
	}

	var booking model.Booking
	err := s.mutate(ctx, func(out *outbox) error {
		snap, err := s.loadAll(ctx)
		if err != nil {
			return fmt.Errorf("book event: %w", err)
		}
		i := findEvent(snap.events, eventID)
		if i < 0 {
			return fmt.Errorf("event %d: %w", eventID, repository.ErrNotFound)
		}
		if findUser(snap.users, req.UserID) < 0 {
			return fmt.Errorf("user %d: %w", req.UserID, repository.ErrNotFound)
		}
		if snap.events[i].IsFull() {
			return repository.ErrEventFull
		}

		id, err := s.repo.NextID(ctx, repository.Bookings)
		if err != nil {
			return fmt.Errorf("book event: %w", err)
		}
		booking = model.Booking{
			ID:          id,
			UserID:      req.UserID,
			EventID:     eventID,
			BookingDate: s.clock.Now().UTC(),
		}
		snap.events[i].BookedSeats++

		// Seats are written before the booking, so no stored booking lacks its
		// seat.
		if err := s.repo.SaveEvents(ctx, snap.events); err != nil {
			return fmt.Errorf("save booked seats: %w", err)
		}
		if err := s.repo.SaveBookings(ctx, append(snap.bookings, booking)); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}

		s.log.LogDomain("BOOKED", booking.ID, fmt.Sprintf("user %d, event %d, %d seats left",
			booking.UserID, booking.EventID, snap.events[i].SeatsLeft()))
		s.enqueue(out, notify.BookingCreated, booking.ID, booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns the live bookings matching f, joined with their
// event and user. Orphaned bookings are skipped.
func (s *BookingService) ListBookings(ctx context.Context, f model.BookingFilter) ([]model.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	users, events := snap.userIndex(), snap.eventIndex()
	now := s.now()
	views := make([]model.BookingView, 0, len(snap.bookings))
	for _, b := range snap.liveBookings() {
		if f.UserID != 0 && b.UserID != f.UserID {
			continue
		}
		if f.EventID != 0 && b.EventID != f.EventID {
			continue
		}
		views = append(views, bookingView(b, events[b.EventID], users[b.UserID], now))
	}
	return views, nil
}

// GetBooking returns one live booking. An orphaned booking is reported as
// not found.
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*model.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	users, events := snap.userIndex(), snap.eventIndex()
	for _, b := range snap.liveBookings() {
		if b.ID == id {
			v := bookingView(b, events[b.EventID], users[b.UserID], s.now())
			return &v, nil
		}
	}
	return nil, repository.ErrNotFound
}

// BookingTicket renders the QR ticket of a live booking as PNG.
func (s *BookingService) BookingTicket(ctx context.Context, id int64) ([]byte, error) {
	v, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := ticket.Encode(*v)
	if err != nil {
		return nil, fmt.Errorf("render ticket %d: %w", id, err)
	}
	return png, nil
}

func bookingView(b model.Booking, e *model.Event, u *model.User, now time.Time) model.BookingView {
	return model.BookingView{
		ID:          b.ID,
		BookingDate: b.BookingDate,
		Status:      DeriveBookingStatus(b, now),
		Event: model.BookingEvent{
			ID:       e.ID,
			Title:    e.Title,
			Image:    e.Image,
			Date:     e.Date,
			Time:     e.Time,
			Location: e.Location,
		},
		User: model.BookingUser{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		},
	}
}
