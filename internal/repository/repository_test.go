package repository_test

import (
	"context"
	"io"
	"testing"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/Shivanand-hulikatti/event-booking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, seed *repository.Dataset) (*repository.Repository, store.Store) {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return repository.New(s, seed, logger.NewWriter(io.Discard)), s
}

func TestAbsentDocumentsFallBackToSeed(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, repository.Seed())

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	events, err := repo.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(102), events[1].ID)
	assert.Equal(t, 45, events[1].BookedSeats)

	bookings, err := repo.Bookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
}

func TestSeedFallbackIsACopy(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, repository.Seed())

	events, err := repo.Events(ctx)
	require.NoError(t, err)
	events[0].BookedSeats = 99

	again, err := repo.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].BookedSeats)
}

func TestNoSeedReadsEmpty(t *testing.T) {
	repo, _ := newRepo(t, nil)

	events, err := repo.Events(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSaveAndReload(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t, repository.Seed())

	require.NoError(t, repo.SaveEvents(ctx, []model.Event{{ID: 7, Title: "Only", TotalSeats: 5}}))

	events, err := repo.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Only", events[0].Title)

	raw, err := s.Get(ctx, repository.EventsKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalSeats":5`)
}

func TestSaveEmptyEncodesArray(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t, repository.Seed())

	require.NoError(t, repo.SaveBookings(ctx, nil))

	raw, err := s.Get(ctx, repository.BookingsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	bookings, err := repo.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestMalformedDocumentIsAnError(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t, repository.Seed())
	require.NoError(t, s.Put(ctx, repository.UsersKey, []byte(`{not json`)))

	_, err := repo.Users(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode "+repository.UsersKey)
}

func TestNextIDStartsAboveSeedAndNeverRepeats(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, repository.Seed())

	id, err := repo.NextID(ctx, repository.Events)
	require.NoError(t, err)
	assert.Equal(t, int64(104), id)

	// Deleting every event must not rewind the counter.
	require.NoError(t, repo.SaveEvents(ctx, nil))

	id, err = repo.NextID(ctx, repository.Events)
	require.NoError(t, err)
	assert.Equal(t, int64(105), id)

	id, err = repo.NextID(ctx, repository.Bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(504), id)

	id, err = repo.NextID(ctx, repository.Users)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestNextIDEmptyCollectionStartsAtOne(t *testing.T) {
	repo, _ := newRepo(t, nil)

	id, err := repo.NextID(context.Background(), repository.Bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestSaveKeepsRemovedIDsBurnt(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, repository.Seed())

	// Drop the highest user before any id has been handed out.
	users, err := repo.Users(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SaveUsers(ctx, users[:2]))

	id, err := repo.NextID(ctx, repository.Users)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	// Same for a cascade that empties bookings.
	require.NoError(t, repo.SaveBookings(ctx, nil))

	id, err = repo.NextID(ctx, repository.Bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(504), id)
}

func TestSaveRaisesCounterPastIncomingIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, repository.Seed())

	id, err := repo.NextID(ctx, repository.Bookings)
	require.NoError(t, err)
	require.Equal(t, int64(504), id)

	require.NoError(t, repo.SaveBookings(ctx, []model.Booking{{ID: 700, UserID: 1, EventID: 101}}))

	id, err = repo.NextID(ctx, repository.Bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(701), id)
}
