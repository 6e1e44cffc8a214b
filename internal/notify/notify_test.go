package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	n := New(BookingCreated, 504, map[string]int{"eventId": 102}, at)

	_, err := uuid.Parse(n.ID)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, n.OccurredAt.Location())

	raw, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"booking.created"`)
	assert.Contains(t, string(raw), `"payload":{"eventId":102}`)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(logger.NewWriter(&buf))

	require.NoError(t, p.Publish(context.Background(), New(EventDeleted, 101, nil, time.Now())))
	assert.Contains(t, buf.String(), "[event.deleted] 101")
	assert.NoError(t, p.Close())
}

func TestKafkaPublisherConfig(t *testing.T) {
	p := NewKafkaPublisher([]string{"k1:9092", "k2:9092"}, "bookings")
	assert.Equal(t, "bookings", p.Writer.Topic)
	assert.NotNil(t, p.Writer.Addr)
	assert.Equal(t, 10*time.Millisecond, p.Writer.BatchTimeout)
}
