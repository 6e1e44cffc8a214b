// Package repository persists the users, events and bookings collections as
// whole JSON documents in a key-value store. Reads of a missing document fall
// back to the bundled seed dataset.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/store"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is fully booked")

// Storage keys. The names match the documents written by the browser
// client, so an exported local storage dump can be loaded as is.
const (
	UsersKey    = "eventBookingSystem_users"
	EventsKey   = "eventBookingSystem_events"
	BookingsKey = "eventBookingSystem_bookings"

	sequenceKeyPrefix = "eventBookingSystem_seq_"
)

// Collection names one of the three documents.
type Collection string

const (
	Users    Collection = "users"
	Events   Collection = "events"
	Bookings Collection = "bookings"
)

// Repository reads and writes whole collections. It holds no state of its own
// beyond the store, so callers serialise read-modify-write cycles themselves.
type Repository struct {
	store store.Store
	seed  *Dataset
	log   *logger.Logger
}

// New builds a repository over s. A nil seed means absent documents read as
// empty collections.
func New(s store.Store, seed *Dataset, log *logger.Logger) *Repository {
	if seed == nil {
		seed = &Dataset{}
	}
	return &Repository{store: s, seed: seed, log: log}
}

func (r *Repository) Users(ctx context.Context) ([]model.User, error) {
	return load(ctx, r, UsersKey, r.seed.Users)
}

func (r *Repository) SaveUsers(ctx context.Context, users []model.User) error {
	if err := r.reserve(ctx, Users, highestID(users, func(u model.User) int64 { return u.ID })); err != nil {
		return err
	}
	return r.put(ctx, UsersKey, orEmpty(users))
}

func (r *Repository) Events(ctx context.Context) ([]model.Event, error) {
	return load(ctx, r, EventsKey, r.seed.Events)
}

func (r *Repository) SaveEvents(ctx context.Context, events []model.Event) error {
	if err := r.reserve(ctx, Events, highestID(events, func(e model.Event) int64 { return e.ID })); err != nil {
		return err
	}
	return r.put(ctx, EventsKey, orEmpty(events))
}

func (r *Repository) Bookings(ctx context.Context) ([]model.Booking, error) {
	return load(ctx, r, BookingsKey, r.seed.Bookings)
}

func (r *Repository) SaveBookings(ctx context.Context, bookings []model.Booking) error {
	if err := r.reserve(ctx, Bookings, highestID(bookings, func(b model.Booking) int64 { return b.ID })); err != nil {
		return err
	}
	return r.put(ctx, BookingsKey, orEmpty(bookings))
}

// NextID hands out the next id of collection c. The counter is persisted so an
// id is never reused, even after the item holding it is deleted. A collection
// without a counter yet starts above its largest existing id.
func (r *Repository) NextID(ctx context.Context, c Collection) (int64, error) {
	next, ok, err := r.sequence(ctx, c)
	if err != nil {
		return 0, err
	}
	if !ok {
		if next, err = r.storedMaxID(ctx, c); err != nil {
			return 0, err
		}
		next++
	}

	if err := r.put(ctx, sequenceKey(c), next+1); err != nil {
		return 0, err
	}
	return next, nil
}

// reserve runs before every save of c. It records a counter past both the
// ids currently stored and incoming, the largest id about to be written, so
// ids dropped by the save are never handed out again.
func (r *Repository) reserve(ctx context.Context, c Collection, incoming int64) error {
	current, ok, err := r.sequence(ctx, c)
	if err != nil {
		return err
	}
	next := current
	if !ok {
		stored, err := r.storedMaxID(ctx, c)
		if err != nil {
			return err
		}
		next = stored + 1
	}
	if incoming >= next {
		next = incoming + 1
	}
	if ok && next == current {
		return nil
	}
	return r.put(ctx, sequenceKey(c), next)
}

// sequence reads the persisted counter of c. ok is false when none exists yet.
func (r *Repository) sequence(ctx context.Context, c Collection) (next int64, ok bool, err error) {
	key := sequenceKey(c)
	raw, err := r.store.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &next); err != nil {
		return 0, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return next, true, nil
}

func sequenceKey(c Collection) string {
	return sequenceKeyPrefix + string(c)
}

// storedMaxID is the largest id in the stored document of c, or in the seed
// when the document is absent.
func (r *Repository) storedMaxID(ctx context.Context, c Collection) (int64, error) {
	switch c {
	case Users:
		users, err := r.Users(ctx)
		return highestID(users, func(u model.User) int64 { return u.ID }), err
	case Events:
		events, err := r.Events(ctx)
		return highestID(events, func(e model.Event) int64 { return e.ID }), err
	case Bookings:
		bookings, err := r.Bookings(ctx)
		return highestID(bookings, func(b model.Booking) int64 { return b.ID }), err
	default:
		return 0, fmt.Errorf("unknown collection %q", c)
	}
}

func load[T any](ctx context.Context, r *Repository, key string, fallback []T) ([]T, error) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.log.LogStore("GET", key, "absent, using seed data")
			return append([]T{}, fallback...), nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func (r *Repository) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	r.log.LogStore("PUT", key, fmt.Sprintf("%d bytes", len(raw)))
	return nil
}

// orEmpty keeps an emptied collection encoded as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func highestID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest
}
