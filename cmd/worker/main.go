package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/albarakah/voyages/internal/kafka"
	"github.com/albarakah/voyages/internal/notify"
	"github.com/albarakah/voyages/pkg/config"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker drains the confirmation retry topic: every dispatch the API
// could not deliver inline is re-attempted here with bounded backoff.
// Exhausted messages are logged and dropped; the booking itself stays
// completed either way.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := notify.NewClient(
		notify.WithBaseURL(cfg.Notifier.BaseURL),
		notify.WithAPIKey(cfg.Notifier.APIKey),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.RetryTopic)
	defer consumer.Close()

	log.Printf("Retry worker consuming %s", cfg.Kafka.RetryTopic)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var confirmation models.BookingConfirmation
		if err := json.Unmarshal(msg.Value, &confirmation); err != nil {
			log.Printf("decode confirmation error: %v", err)
			return nil
		}
		redispatch(ctx, notifier, confirmation, cfg.Worker)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("Retry worker shutting down")
}

func redispatch(ctx context.Context, notifier *notify.Client, confirmation models.BookingConfirmation, cfg config.WorkerConfig) {
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := notifier.SendConfirmation(ctx, confirmation)
		if err == nil {
			log.Printf("confirmation %s delivered on attempt %d", confirmation.BookingReference, attempt)
			return
		}
		log.Printf("confirmation %s attempt %d failed: %v", confirmation.BookingReference, attempt, err)

		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * cfg.Backoff):
		case <-ctx.Done():
			return
		}
	}
	log.Printf("confirmation %s dropped after %d attempts", confirmation.BookingReference, cfg.MaxAttempts)
}
