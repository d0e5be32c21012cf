package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseTransaction mirrors a purchase_transactions row.
type PurchaseTransaction struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"user_id"`
	TokenAmount          decimal.Decimal   `json:"token_amount"`
	TransactionType      string            `json:"transaction_type"`
	RecipientID          *string           `json:"recipient_id,omitempty"`
	GatewayTransactionID *string           `json:"gateway_transaction_id,omitempty"`
	GatewayStatus        *string           `json:"gateway_status,omitempty"`
	Status               TransactionStatus `json:"transaction_status"`
	CompletedAt          *time.Time        `json:"completed_at,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// WalletCredit is the argument set of the add_transaction stored procedure.
type WalletCredit struct {
	UserID      string
	Amount      decimal.Decimal
	Type        string
	Description string
	ReferenceID string
}

const CreditTypeCredit = "credit"

// Completion is applied atomically: status update, wallet credit and outbox event.
type Completion struct {
	TransactionID string
	GatewayStatus string
	CompletedAt   time.Time
	Credit        WalletCredit
	Event         OutboxEvent
}

type Failure struct {
	TransactionID string
	GatewayStatus string
	Event         OutboxEvent
}
