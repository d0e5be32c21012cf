package repository

import (
	"context"

	"github.com/honeynil/TokenWalletPayments/internal/models"
)

type OutboxRepository interface {
	// PublishPending locks up to limit unpublished events, hands each to publish in order and
	// stamps the ones that succeeded. It stops at the first publish error.
	PublishPending(ctx context.Context, limit int, publish func(models.OutboxEvent) error) (int, error)
}
