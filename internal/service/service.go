// Package service implements the event catalog, booking engine and user
// directory on top of the document repository.
//
// Every operation loads whole collections, works on the in-memory copies and
// writes changed collections back whole. Operations are serialised by a
// mutex shared across the three services, so a single process never
// interleaves two read-modify-write cycles.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/notify"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/jonboulle/clockwork"
)

// Core holds what the three services share.
type Core struct {
	repo      *repository.Repository
	publisher notify.Publisher
	clock     clockwork.Clock
	log       *logger.Logger
	loc       *time.Location

	mu sync.Mutex
}

// NewCore wires the shared dependencies. A nil clock means the wall clock, a
// nil publisher logs notifications, and a nil location means time.Local.
func NewCore(
	repo *repository.Repository,
	publisher notify.Publisher,
	clock clockwork.Clock,
	log *logger.Logger,
	loc *time.Location,
) *Core {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = notify.NewLogPublisher(log)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Core{repo: repo, publisher: publisher, clock: clock, log: log, loc: loc}
}

func (c *Core) now() time.Time {
	return c.clock.Now().In(c.loc)
}

// outbox holds the notifications of one mutation until the lock is released.
type outbox []notify.Notification

func (c *Core) enqueue(out *outbox, typ notify.Type, key int64, payload any) {
	*out = append(*out, notify.New(typ, key, payload, c.clock.Now()))
}

// mutate runs fn with the core lock held. What fn queued is published after
// the lock is released, and only when fn succeeds.
func (c *Core) mutate(ctx context.Context, fn func(out *outbox) error) error {
	var out outbox
	err := func() error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return fn(&out)
	}()
	if err != nil {
		return err
	}
	for _, n := range out {
		c.publish(ctx, n)
	}
	return nil
}

func (c *Core) publish(ctx context.Context, n notify.Notification) {
	if err := c.publisher.Publish(ctx, n); err != nil {
		c.log.Warn("NOTIFY", fmt.Sprintf("publish %s for %d failed: %v", n.Type, n.Key, err))
	}
}

// snapshot is one consistent read of all three collections.
type snapshot struct {
	users    []model.User
	events   []model.Event
	bookings []model.Booking
}

func (c *Core) loadAll(ctx context.Context) (*snapshot, error) {
	users, err := c.repo.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	events, err := c.repo.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	bookings, err := c.repo.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return &snapshot{users: users, events: events, bookings: bookings}, nil
}

func (s *snapshot) userIndex() map[int64]*model.User {
	idx := make(map[int64]*model.User, len(s.users))
	for i := range s.users {
		idx[s.users[i].ID] = &s.users[i]
	}
	return idx
}

func (s *snapshot) eventIndex() map[int64]*model.Event {
	idx := make(map[int64]*model.Event, len(s.events))
	for i := range s.events {
		idx[s.events[i].ID] = &s.events[i]
	}
	return idx
}

// liveBookings drops orphaned bookings: those whose user or event is gone.
func (s *snapshot) liveBookings() []model.Booking {
	users, events := s.userIndex(), s.eventIndex()
	live := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if users[b.UserID] == nil || events[b.EventID] == nil {
			continue
		}
		live = append(live, b)
	}
	return live
}

func findEvent(events []model.Event, id int64) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}

func findUser(users []model.User, id int64) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
