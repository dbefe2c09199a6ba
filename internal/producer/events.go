package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
)

const (
	EntryCreated = "entry.created"
	EntryDeleted = "entry.deleted"
)

// Event describes one change of the ledger
type Event struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	EntryID    int64        `json:"entry_id"`
	Entry      *model.Entry `json:"entry,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewEvent(eventType string, entryID int64, entry *model.Entry) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntryID:    entryID,
		Entry:      entry,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events to one topic, keyed by entry id so that events of an entry stay ordered
type Kafka struct {
	writer writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("producer.Kafka couldn't marshal event %s: %w", event.ID, err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EntryID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("producer.Kafka couldn't write event %s: %w", event.ID, err)
	}
	logrus.Debugf("producer.Kafka published %s for entry %d", event.Type, event.EntryID)
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Discard drops every event. Used when no brokers are configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

func (Discard) Close() error { return nil }
