package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/kafka"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/observability"
	"github.com/honeynil/TokenWalletPayments/internal/models"
	"github.com/honeynil/TokenWalletPayments/internal/repository"
)

const outboxBatchSize = 100

// OutboxRelay publishes purchase events written alongside terminal status transitions.
type OutboxRelay struct {
	outboxRepo repository.OutboxRepository
	producer   kafka.KafkaProducer
	interval   time.Duration
}

func NewOutboxRelay(outboxRepo repository.OutboxRepository, producer kafka.KafkaProducer, interval time.Duration) *OutboxRelay {
	return &OutboxRelay{
		outboxRepo: outboxRepo,
		producer:   producer,
		interval:   interval,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("outbox relay started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("outbox relay pass failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many events were handed to Kafka.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	sent, err := r.outboxRepo.PublishPending(ctx, outboxBatchSize, func(event models.OutboxEvent) error {
		if err := r.producer.Send(ctx, event.Topic, event.Key, event.Payload); err != nil {
			observability.OutboxPublished.WithLabelValues("error").Inc()
			return err
		}
		observability.OutboxPublished.WithLabelValues("success").Inc()
		return nil
	})
	return sent, err
}
