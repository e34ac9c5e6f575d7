package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the outbox event type on every published record.
const EventTypeHeader = "event_type"

type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	EventType string
}

// Producer publishes outbox events. Records with the same key land on the
// same partition, so events for one roast stay ordered.
type Producer struct {
	w *kafka.Writer
}

// NewProducer takes a comma separated broker list.
func NewProducer(brokers string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, m Message) error {
	return p.w.WriteMessages(ctx, toRecord(m))
}

func toRecord(m Message) kafka.Message {
	rec := kafka.Message{Topic: m.Topic, Key: m.Key, Value: m.Value}
	if m.EventType != "" {
		rec.Headers = []kafka.Header{{Key: EventTypeHeader, Value: []byte(m.EventType)}}
	}
	return rec
}

func (p *Producer) Close() error { return p.w.Close() }
