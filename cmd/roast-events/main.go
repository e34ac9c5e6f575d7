package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/config"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/events"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/kafka"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// roast-events tails the roast topic and logs every event the outbox publishes.
func main() {
	cfg := config.Load()

	observability.InitLogger(cfg.ServiceName+"-events", cfg.Environment)
	log := observability.Log
	defer log.Sync()

	if !cfg.EventsEnabled() {
		log.Fatal("KAFKA_BROKERS is not set")
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroup, []string{cfg.KafkaTopic}, &events.RoastLogger{})
	if err != nil {
		log.Fatal("kafka consumer failed", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("tailing roast events", zap.String("topic", cfg.KafkaTopic), zap.String("group", cfg.KafkaGroup))
	consumer.Run(ctx)
	log.Info("roast events stopped")
}
