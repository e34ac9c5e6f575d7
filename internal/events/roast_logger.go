package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/kafka"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// RoastLogger writes one structured line per ROAST_CREATED event.
type RoastLogger struct {
	// Seen, when set, receives each decoded event.
	Seen func(model.RoastCreatedEvent)
}

func (l *RoastLogger) Handle(ctx context.Context, rec kafka.Record) {
	log := observability.GetLogger(ctx)

	if rec.EventType != "" && rec.EventType != model.EventRoastCreate {
		observability.RoastEventsConsumed.WithLabelValues("skipped").Inc()
		log.Debug("ignoring event", zap.String("event_type", rec.EventType))
		return
	}

	var ev model.RoastCreatedEvent
	if err := json.Unmarshal(rec.Value, &ev); err != nil || ev.RoastID == "" {
		observability.RoastEventsConsumed.WithLabelValues("invalid").Inc()
		log.Warn("dropping malformed roast event", zap.ByteString("key", rec.Key), zap.Error(err))
		return
	}

	observability.RoastEventsConsumed.WithLabelValues("ok").Inc()
	log.Info("roast event",
		zap.String("roast_id", ev.RoastID),
		zap.String("user_id", ev.UserID),
		zap.String("username", ev.Username),
		zap.Bool("mock_data", ev.IsMockData),
		zap.Time("created_at", ev.CreatedAt),
	)

	if l.Seen != nil {
		l.Seen(ev)
	}
}
