package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// Record is a consumed message with its event type header resolved.
type Record struct {
	Key       []byte
	Value     []byte
	EventType string
}

type Handler interface {
	Handle(ctx context.Context, rec Record)
}

func eventType(headers []kgo.RecordHeader) string {
	for _, h := range headers {
		if h.Key == EventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}

// Consumer reads roast events as part of a consumer group.
type Consumer struct {
	client  *kgo.Client
	handler Handler
}

func NewConsumer(brokers, group string, topics []string, handler Handler) (*Consumer, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topics...),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.OnPartitionsRevoked(func(ctx context.Context, _ *kgo.Client, _ map[string][]int32) {
			observability.GetLogger(ctx).Info("kafka partitions revoked")
		}),
		kgo.OnPartitionsAssigned(func(ctx context.Context, _ *kgo.Client, _ map[string][]int32) {
			observability.GetLogger(ctx).Info("kafka partitions assigned")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{client: cl, handler: handler}, nil
}

// Run polls until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	log := observability.GetLogger(ctx)
	log.Info("kafka consumer started")
	for {
		select {
		case <-ctx.Done():
			log.Info("kafka consumer loop stopping: context canceled")
			return
		default:
		}

		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, ferr := range errs {
				if errors.Is(ferr.Err, context.Canceled) {
					return
				}
				log.Error("kafka fetch error", zap.String("topic", ferr.Topic), zap.Int32("partition", ferr.Partition), zap.Error(ferr.Err))
			}
			continue
		}

		fetches.EachRecord(func(r *kgo.Record) {
			c.handler.Handle(ctx, Record{Key: r.Key, Value: r.Value, EventType: eventType(r.Headers)})
		})
	}
}

func (c *Consumer) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
