package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/models"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

const (
	lockUnpublishedQuery = `
		SELECT id, event_id, topic, event_key, payload, created_at
		FROM purchase_outbox
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`

	markPublishedQuery = `UPDATE purchase_outbox SET published_at = $1 WHERE id = ANY($2)`
)

type PostgresOutboxRepository struct {
	db *sql.DB
}

func NewPostgresOutboxRepository(db *sql.DB) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{db: db}
}

func (r *PostgresOutboxRepository) PublishPending(ctx context.Context, limit int, publish func(models.OutboxEvent) error) (sent int, err error) {
	ctx, span, finish := instrument(ctx, "outbox-repository", "PublishPending")
	defer func() { finish(err) }()
	span.SetAttributes(attribute.Int("limit", limit))

	var publishErr error
	err = runInTx(ctx, r.db, "PublishPending", func(tx *sql.Tx) error {
		events, err := lockUnpublished(ctx, tx, limit)
		if err != nil {
			return err
		}

		var ids []int64
		for _, event := range events {
			if publishErr = publish(event); publishErr != nil {
				slog.Error("outbox publish stopped", "method", "PublishPending", "outbox_id", event.ID, "event_id", event.EventID, "error", publishErr)
				break
			}
			ids = append(ids, event.ID)
		}
		if len(ids) == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, markPublishedQuery, time.Now().UTC(), pq.Array(ids)); err != nil {
			return datastoreError("PublishPending", "mark outbox published", err)
		}
		sent = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if sent > 0 {
		slog.Info("outbox events published", "method", "PublishPending", "count", sent)
	}
	return sent, publishErr
}

func lockUnpublished(ctx context.Context, tx *sql.Tx, limit int) ([]models.OutboxEvent, error) {
	rows, err := tx.QueryContext(ctx, lockUnpublishedQuery, limit)
	if err != nil {
		return nil, datastoreError("PublishPending", "lock outbox events", err)
	}
	defer rows.Close()

	var events []models.OutboxEvent
	for rows.Next() {
		var (
			event   models.OutboxEvent
			payload []byte
		)
		if err := rows.Scan(&event.ID, &event.EventID, &event.Topic, &event.Key, &payload, &event.CreatedAt); err != nil {
			return nil, datastoreError("PublishPending", "scan outbox event", err)
		}
		event.Payload = payload
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, datastoreError("PublishPending", "iterate outbox events", err)
	}
	return events, nil
}
