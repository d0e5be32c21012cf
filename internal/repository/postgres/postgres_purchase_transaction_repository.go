package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/models"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const (
	attachIntentQuery = `
		UPDATE purchase_transactions
		SET gateway_transaction_id = $2, gateway_status = $3
		WHERE id = $1 AND (gateway_transaction_id IS NULL OR gateway_transaction_id = $2)`

	selectByGatewayIDQuery = `
		SELECT id, user_id, token_amount, transaction_type, recipient_id, gateway_transaction_id,
			gateway_status, COALESCE(transaction_status, 'pending'), completed_at, created_at
		FROM purchase_transactions
		WHERE gateway_transaction_id = $1
		LIMIT 2`

	completeQuery = `
		UPDATE purchase_transactions
		SET transaction_status = 'completed', gateway_status = $2, completed_at = $3
		WHERE id = $1 AND COALESCE(transaction_status, 'pending') = 'pending'`

	failQuery = `
		UPDATE purchase_transactions
		SET transaction_status = 'failed', gateway_status = $2
		WHERE id = $1 AND COALESCE(transaction_status, 'pending') = 'pending'`

	addTransactionQuery = `
		SELECT add_transaction(
			p_user_id => $1,
			p_amount => $2,
			p_transaction_type => $3,
			p_description => $4,
			p_reference_id => $5)`

	insertOutboxQuery = `
		INSERT INTO purchase_outbox (event_id, topic, event_key, payload)
		VALUES ($1, $2, $3, $4)`

	listAwaitingQuery = `
		SELECT id, user_id, token_amount, transaction_type, recipient_id, gateway_transaction_id,
			gateway_status, COALESCE(transaction_status, 'pending'), completed_at, created_at
		FROM purchase_transactions
		WHERE COALESCE(transaction_status, 'pending') = 'pending'
			AND gateway_transaction_id IS NOT NULL
			AND created_at < $1
		ORDER BY created_at
		LIMIT $2`
)

type PostgresPurchaseTransactionRepository struct {
	db *sql.DB
}

func NewPostgresPurchaseTransactionRepository(db *sql.DB) *PostgresPurchaseTransactionRepository {
	return &PostgresPurchaseTransactionRepository{db: db}
}

func (r *PostgresPurchaseTransactionRepository) AttachGatewayIntent(ctx context.Context, transactionID, intentID, gatewayStatus string) (err error) {
	ctx, span, finish := instrument(ctx, "purchase-transaction-repository", "AttachGatewayIntent")
	defer func() { finish(err) }()
	span.SetAttributes(
		attribute.String("transaction_id", transactionID),
		attribute.String("payment_intent_id", intentID),
	)

	err = runInTx(ctx, r.db, "AttachGatewayIntent", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, attachIntentQuery, transactionID, intentID, gatewayStatus)
		if err != nil {
			return datastoreError("AttachGatewayIntent", "update purchase transaction", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return datastoreError("AttachGatewayIntent", "rows affected", err)
		}
		if affected == 0 {
			slog.Error("gateway intent not attached", "method", "AttachGatewayIntent", "transaction_id", transactionID, "payment_intent_id", intentID)
			return pkgerrors.ErrTransactionNotUpdated
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("gateway intent attached", "method", "AttachGatewayIntent", "transaction_id", transactionID, "payment_intent_id", intentID, "gateway_status", gatewayStatus)
	return nil
}

func (r *PostgresPurchaseTransactionRepository) GetByGatewayTransactionID(ctx context.Context, intentID string) (tx *models.PurchaseTransaction, err error) {
	ctx, span, finish := instrument(ctx, "purchase-transaction-repository", "GetByGatewayTransactionID")
	defer func() { finish(err) }()
	span.SetAttributes(attribute.String("payment_intent_id", intentID))

	err = runInTx(ctx, r.db, "GetByGatewayTransactionID", func(dbTx *sql.Tx) error {
		rows, err := dbTx.QueryContext(ctx, selectByGatewayIDQuery, intentID)
		if err != nil {
			return datastoreError("GetByGatewayTransactionID", "select purchase transaction", err)
		}
		defer rows.Close()

		var found []models.PurchaseTransaction
		for rows.Next() {
			t, err := scanPurchaseTransaction(rows)
			if err != nil {
				return datastoreError("GetByGatewayTransactionID", "scan purchase transaction", err)
			}
			found = append(found, *t)
		}
		if err := rows.Err(); err != nil {
			return datastoreError("GetByGatewayTransactionID", "iterate purchase transactions", err)
		}

		if len(found) != 1 {
			slog.Error("transaction lookup did not resolve to one row", "method", "GetByGatewayTransactionID", "payment_intent_id", intentID, "rows", len(found))
			return pkgerrors.ErrTransactionNotFound
		}
		tx = &found[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transaction retrieved", "method", "GetByGatewayTransactionID", "transaction_id", tx.ID, "payment_intent_id", intentID, "status", tx.Status)
	return tx, nil
}

func (r *PostgresPurchaseTransactionRepository) Complete(ctx context.Context, c models.Completion) (err error) {
	ctx, span, finish := instrument(ctx, "purchase-transaction-repository", "CompleteTransaction")
	defer func() { finish(err) }()
	span.SetAttributes(
		attribute.String("transaction_id", c.TransactionID),
		attribute.String("user_id", c.Credit.UserID),
		attribute.String("amount", c.Credit.Amount.String()),
	)

	err = runInTx(ctx, r.db, "CompleteTransaction", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, completeQuery, c.TransactionID, c.GatewayStatus, c.CompletedAt)
		if err != nil {
			return datastoreError("CompleteTransaction", "update purchase transaction", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return datastoreError("CompleteTransaction", "rows affected", err)
		}
		if affected == 0 {
			slog.Warn("transaction no longer pending", "method", "CompleteTransaction", "transaction_id", c.TransactionID)
			return pkgerrors.ErrTransactionFinalized
		}

		if _, err := tx.ExecContext(ctx, addTransactionQuery,
			c.Credit.UserID,
			c.Credit.Amount,
			c.Credit.Type,
			c.Credit.Description,
			c.Credit.ReferenceID,
		); err != nil {
			return datastoreError("CompleteTransaction", "credit wallet", err)
		}

		return insertOutbox(ctx, tx, "CompleteTransaction", c.Event)
	})
	if err != nil {
		return err
	}

	slog.Info("transaction completed and wallet credited", "method", "CompleteTransaction", "transaction_id", c.TransactionID, "user_id", c.Credit.UserID, "amount", c.Credit.Amount.String())
	return nil
}

func (r *PostgresPurchaseTransactionRepository) Fail(ctx context.Context, f models.Failure) (err error) {
	ctx, span, finish := instrument(ctx, "purchase-transaction-repository", "FailTransaction")
	defer func() { finish(err) }()
	span.SetAttributes(
		attribute.String("transaction_id", f.TransactionID),
		attribute.String("gateway_status", f.GatewayStatus),
	)

	err = runInTx(ctx, r.db, "FailTransaction", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, failQuery, f.TransactionID, f.GatewayStatus)
		if err != nil {
			return datastoreError("FailTransaction", "update purchase transaction", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return datastoreError("FailTransaction", "rows affected", err)
		}
		if affected == 0 {
			slog.Warn("transaction no longer pending", "method", "FailTransaction", "transaction_id", f.TransactionID)
			return pkgerrors.ErrTransactionFinalized
		}
		return insertOutbox(ctx, tx, "FailTransaction", f.Event)
	})
	if err != nil {
		return err
	}

	slog.Info("transaction marked failed", "method", "FailTransaction", "transaction_id", f.TransactionID, "gateway_status", f.GatewayStatus)
	return nil
}

func (r *PostgresPurchaseTransactionRepository) ListAwaitingVerification(ctx context.Context, createdBefore time.Time, limit int) (txs []models.PurchaseTransaction, err error) {
	ctx, span, finish := instrument(ctx, "purchase-transaction-repository", "ListAwaitingVerification")
	defer func() { finish(err) }()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.QueryContext(ctx, listAwaitingQuery, createdBefore, limit)
	if err != nil {
		return nil, datastoreError("ListAwaitingVerification", "select pending transactions", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, scanErr := scanPurchaseTransaction(rows)
		if scanErr != nil {
			err = datastoreError("ListAwaitingVerification", "scan purchase transaction", scanErr)
			return nil, err
		}
		txs = append(txs, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, datastoreError("ListAwaitingVerification", "iterate purchase transactions", err)
	}

	slog.Info("pending transactions listed", "method", "ListAwaitingVerification", "count", len(txs))
	return txs, nil
}

func insertOutbox(ctx context.Context, tx *sql.Tx, method string, event models.OutboxEvent) error {
	if _, err := tx.ExecContext(ctx, insertOutboxQuery, event.EventID, event.Topic, event.Key, string(event.Payload)); err != nil {
		return datastoreError(method, "insert outbox event", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPurchaseTransaction(row rowScanner) (*models.PurchaseTransaction, error) {
	var (
		t           models.PurchaseTransaction
		recipientID sql.NullString
		gatewayID   sql.NullString
		gatewayStat sql.NullString
		completedAt sql.NullTime
		status      string
	)
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.TokenAmount,
		&t.TransactionType,
		&recipientID,
		&gatewayID,
		&gatewayStat,
		&status,
		&completedAt,
		&t.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan purchase transaction: %w", err)
	}

	t.Status = models.TransactionStatus(status)
	if recipientID.Valid {
		t.RecipientID = &recipientID.String
	}
	if gatewayID.Valid {
		t.GatewayTransactionID = &gatewayID.String
	}
	if gatewayStat.Valid {
		t.GatewayStatus = &gatewayStat.String
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return &t, nil
}
