package outbox

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/kafka"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// Publisher is the subset of the Kafka producer the worker needs.
type Publisher interface {
	Publish(ctx context.Context, m kafka.Message) error
}

// Worker relays unprocessed outbox_events rows to Kafka.
type Worker struct {
	DB        *sql.DB
	Producer  Publisher
	Topics    map[string]string
	BatchSize int
	PollDelay time.Duration
}

func NewWorker(db *sql.DB, p Publisher, roastTopic string, batchSize int, delay time.Duration) *Worker {
	return &Worker{
		DB:       db,
		Producer: p,
		Topics: map[string]string{
			model.EventRoastCreate: roastTopic,
		},
		BatchSize: batchSize,
		PollDelay: delay,
	}
}

func (w *Worker) Start(ctx context.Context) {
	log := observability.GetLogger(ctx)
	log.Info("outbox worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopping")
			return
		default:
			n, err := w.processBatch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Error("outbox worker error", zap.Error(err))
				}
				sleep(ctx, time.Second)
				continue
			}
			if n == 0 {
				sleep(ctx, w.PollDelay)
			}
		}
	}
}

type event struct {
	id          int64
	aggregateID string
	eventType   string
	payload     []byte
}

func (w *Worker) processBatch(ctx context.Context) (int, error) {
	tx, err := w.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox_events
		WHERE processed_at IS NULL
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT $1
	`, w.BatchSize)
	if err != nil {
		return 0, err
	}

	var events []event
	for rows.Next() {
		var e event
		if err := rows.Scan(&e.id, &e.aggregateID, &e.eventType, &e.payload); err != nil {
			rows.Close()
			return 0, err
		}
		events = append(events, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	log := observability.GetLogger(ctx)
	for _, e := range events {
		topic, ok := w.Topics[e.eventType]
		if ok {
			err := w.Producer.Publish(ctx, kafka.Message{
				Topic:     topic,
				Key:       []byte(e.aggregateID),
				Value:     e.payload,
				EventType: e.eventType,
			})
			if err != nil {
				observability.OutboxPublished.WithLabelValues(e.eventType, "error").Inc()
				return 0, err
			}
			observability.OutboxPublished.WithLabelValues(e.eventType, "ok").Inc()
		} else {
			// Unroutable rows are retired so they do not block the queue.
			log.Warn("unknown event type in outbox", zap.String("event_type", e.eventType))
			observability.OutboxPublished.WithLabelValues(e.eventType, "skipped").Inc()
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE outbox_events
			SET processed_at = NOW()
			WHERE id = $1
		`, e.id); err != nil {
			return 0, err
		}
	}

	return len(events), tx.Commit()
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
