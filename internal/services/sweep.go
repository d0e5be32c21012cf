package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SweepReport summarizes one pass over transactions whose verification never arrived.
type SweepReport struct {
	Checked   int `json:"checked"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// SweepPending reconciles pending transactions older than olderThan. Only intents the gateway
// has settled (succeeded or canceled) are finalized; the rest stay pending for a later pass.
func (s *paymentService) SweepPending(ctx context.Context, olderThan time.Duration, limit int) (*SweepReport, error) {
	tracer := otel.Tracer("payment-service")
	ctx, span := tracer.Start(ctx, "SweepPending")
	defer span.End()

	txs, err := s.transactionRepo.ListAwaitingVerification(ctx, s.now().Add(-olderThan), limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list pending transactions failed")
		slog.Error("failed to list pending transactions", "error", err)
		return nil, err
	}

	report := &SweepReport{}
	for _, tx := range txs {
		if ctx.Err() != nil {
			break
		}
		if tx.GatewayTransactionID == nil {
			continue
		}
		report.Checked++

		result, applied, err := s.reconcile(ctx, *tx.GatewayTransactionID, nil, true)
		switch {
		case err != nil:
			report.Errors++
			slog.Error("sweep reconciliation failed", "transaction_id", tx.ID, "payment_intent_id", *tx.GatewayTransactionID, "error", err)
		case !applied:
			report.Skipped++
		case result.PaymentStatus == models.IntentStatusSucceeded:
			report.Completed++
		default:
			report.Failed++
		}
	}

	span.SetAttributes(
		attribute.Int("checked", report.Checked),
		attribute.Int("completed", report.Completed),
		attribute.Int("failed", report.Failed),
		attribute.Int("errors", report.Errors),
	)
	slog.Info("sweep finished",
		"checked", report.Checked,
		"completed", report.Completed,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"errors", report.Errors)
	return report, ctx.Err()
}
