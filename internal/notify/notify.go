// Package notify publishes domain notifications after successful mutations.
// Delivery is best effort: a failed publish never undoes the mutation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Type string

const (
	EventCreated   Type = "event.created"
	EventDeleted   Type = "event.deleted"
	BookingCreated Type = "booking.created"
	UserCreated    Type = "user.created"
	UserUpdated    Type = "user.updated"
	UserDeleted    Type = "user.deleted"
)

// Notification is the message envelope. Key is the id of the entity the
// notification is about and doubles as the kafka partition key.
type Notification struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Key        int64     `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps a notification with a fresh id.
func New(typ Type, key int64, payload any, at time.Time) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Type:       typ,
		Key:        key,
		OccurredAt: at.UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// LogPublisher writes notifications to the log. It is used when kafka is
// disabled.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, n Notification) error {
	p.log.Debug("NOTIFY", fmt.Sprintf("[%s] %d - %s", n.Type, n.Key, n.ID))
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// KafkaPublisher streams notifications as JSON to a single topic.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, n Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", n.Type, err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(n.Key, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}
