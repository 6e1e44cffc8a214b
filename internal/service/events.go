package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/auth"
	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/notify"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/jinzhu/copier"
)

const (
	defaultOrganizer = "Current User"
	defaultImage     = "/techfest.png"
)

// EventService is the event catalog.
type EventService struct {
	*Core
	authz auth.Authorizer
}

func NewEventService(core *Core, authz auth.Authorizer) *EventService {
	return &EventService{Core: core, authz: authz}
}

// ListEvents returns the events matching f, in stored order, with their
// derived seat fields.
func (s *EventService) ListEvents(ctx context.Context, f model.EventFilter) ([]model.EventView, error) {
	var ve ValidationError
	if err := checkStruct(f, &ve); err != nil {
		return nil, err
	}
	if err := ve.err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	text := strings.ToLower(strings.TrimSpace(f.Text))
	views := make([]model.EventView, 0, len(events))
	for _, e := range events {
		if matchesText(e, text) && matchesAvailability(e, f.Availability) && s.matchesDate(e, f.Date, now) {
			views = append(views, model.NewEventView(e))
		}
	}
	return views, nil
}

func matchesText(e model.Event, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), text) ||
		strings.Contains(strings.ToLower(e.Description), text) ||
		strings.Contains(strings.ToLower(e.Location), text)
}

func matchesAvailability(e model.Event, f model.AvailabilityFilter) bool {
	left := e.SeatsLeft()
	switch f {
	case model.AvailabilityFilterAvailable:
		return left > 0
	case model.AvailabilityFilterFew:
		return left > 0 && left <= model.FewSeatsThreshold
	case model.AvailabilityFilterFull:
		return e.TotalSeats == e.BookedSeats
	default:
		return true
	}
}

// matchesDate compares the event's calendar date with now. An event whose
// date cannot be parsed only matches the "all" filter.
func (s *EventService) matchesDate(e model.Event, f model.DateFilter, now time.Time) bool {
	if f == "" || f == model.DateAll {
		return true
	}
	day, err := parseEventDate(e.Date, s.loc)
	if err != nil {
		return false
	}
	switch f {
	case model.DateUpcoming:
		return day.After(now)
	case model.DateToday:
		return sameDay(day, now)
	default:
		return true
	}
}

// GetEvent returns a single event by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.EventView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	i := findEvent(events, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	v := model.NewEventView(events[i])
	return &v, nil
}

// CreateEvent validates the request and appends a new event with no seats
// booked.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Location = strings.TrimSpace(req.Location)
	req.Image = strings.TrimSpace(req.Image)

	var ve ValidationError
	if err := checkStruct(req, &ve); err != nil {
		return nil, err
	}

	day, dayErr := parseEventDate(req.Date, s.loc)
	offset, offErr := parseEventTime(req.Time)
	if req.Date != "" && dayErr != nil {
		ve.add("date", "Date is not a valid date")
	}
	if req.Time != "" && offErr != nil {
		ve.add("time", "Time is not a valid time")
	}
	if dayErr == nil && offErr == nil && !day.Add(offset).After(s.now()) {
		ve.add("date", "Date must be in the future")
	}
	if err := ve.err(); err != nil {
		return nil, err
	}

	var event model.Event
	if err := copier.Copy(&event, &req); err != nil {
		return nil, fmt.Errorf("copy event fields: %w", err)
	}
	event.Date = day.Format(storedDateLayout)
	event.Time = formatEventTime(offset)
	event.BookedSeats = 0
	event.Organizer = defaultOrganizer
	if event.Image == "" {
		event.Image = defaultImage
	}

	err := s.mutate(ctx, func(out *outbox) error {
		events, err := s.repo.Events(ctx)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if event.ID, err = s.repo.NextID(ctx, repository.Events); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := s.repo.SaveEvents(ctx, append(events, event)); err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		s.log.LogDomain("EVENT_CREATED", event.ID, event.Title)
		s.enqueue(out, notify.EventCreated, event.ID, event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event and every booking that references it. The
// caller must hold the delete capability; this is checked before the event
// is looked up.
func (s *EventService) DeleteEvent(ctx context.Context, id int64, secret string) error {
	if err := s.authz.Authorize(ctx, auth.DeleteEvent, auth.Credentials{Secret: secret}); err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			s.log.LogSecurity("DELETE_DENIED", fmt.Sprintf("event %d", id))
		}
		return err
	}

	return s.mutate(ctx, func(out *outbox) error {
		events, err := s.repo.Events(ctx)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		i := findEvent(events, id)
		if i < 0 {
			return repository.ErrNotFound
		}
		deleted := events[i]
		events = append(events[:i], events[i+1:]...)

		bookings, err := s.repo.Bookings(ctx)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		kept := bookings[:0]
		for _, b := range bookings {
			if b.EventID != id {
				kept = append(kept, b)
			}
		}
		removed := len(bookings) - len(kept)

		if err := s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if err := s.repo.SaveBookings(ctx, kept); err != nil {
			return fmt.Errorf("delete event bookings: %w", err)
		}

		s.log.LogDomain("EVENT_DELETED", id, fmt.Sprintf("%s, %d bookings removed", deleted.Title, removed))
		s.enqueue(out, notify.EventDeleted, id, map[string]int{"bookingsRemoved": removed})
		return nil
	})
}
