package repository

import (
	"context"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/models"
)

type PurchaseTransactionRepository interface {
	// AttachGatewayIntent records the gateway intent on a transaction. It fails with
	// ErrTransactionNotUpdated when no row accepted the write.
	AttachGatewayIntent(ctx context.Context, transactionID, intentID, gatewayStatus string) error
	// GetByGatewayTransactionID expects exactly one matching row.
	GetByGatewayTransactionID(ctx context.Context, intentID string) (*models.PurchaseTransaction, error)
	// Complete moves a pending transaction to completed and credits the wallet in one
	// database transaction. A non-pending row yields ErrTransactionFinalized.
	Complete(ctx context.Context, completion models.Completion) error
	Fail(ctx context.Context, failure models.Failure) error
	ListAwaitingVerification(ctx context.Context, createdBefore time.Time, limit int) ([]models.PurchaseTransaction, error)
}
