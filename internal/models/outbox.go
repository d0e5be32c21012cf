package models

import (
	"encoding/json"
	"time"
)

type OutboxEvent struct {
	ID          int64
	EventID     string
	Topic       string
	Key         string
	Payload     json.RawMessage
	CreatedAt   time.Time
	PublishedAt *time.Time
}

const (
	EventPurchaseCompleted = "purchase.completed"
	EventPurchaseFailed    = "purchase.failed"
)

// PurchaseEvent is the payload published for terminal purchase transitions.
type PurchaseEvent struct {
	EventType       string `json:"event_type"`
	TransactionID   string `json:"transaction_id"`
	UserID          string `json:"user_id"`
	TokenAmount     string `json:"token_amount"`
	PaymentIntentID string `json:"payment_intent_id"`
	GatewayStatus   string `json:"gateway_status"`
	OccurredAt      string `json:"occurred_at"`
}
