package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/auth"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/gateway"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/observability"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/redis"
	"github.com/honeynil/TokenWalletPayments/internal/models"
	"github.com/honeynil/TokenWalletPayments/internal/repository"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const verifyLockTTL = 30 * time.Second

type PaymentService interface {
	CreateIntent(ctx context.Context, token string, in CreateIntentInput) (*CreateIntentResult, error)
	VerifyPayment(ctx context.Context, token, clientSecret string) (*VerifyResult, error)
	// ReconcileIntent runs verification for an intent without a caller, for operator tooling.
	ReconcileIntent(ctx context.Context, intentID string) (*VerifyResult, error)
	SweepPending(ctx context.Context, olderThan time.Duration, limit int) (*SweepReport, error)
}

type CreateIntentInput struct {
	Amount          json.RawMessage `json:"amount"`
	Currency        json.RawMessage `json:"currency"`
	TransactionID   string          `json:"transactionId" validate:"required"`
	UserID          string          `json:"userId" validate:"required"`
	TransactionType string          `json:"transactionType"`
	RecipientID     string          `json:"recipientId"`
}

type CreateIntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type VerifyResult struct {
	TransactionID string `json:"transactionId"`
	PaymentStatus string `json:"paymentStatus"`
}

type paymentService struct {
	authenticator   auth.Authenticator
	gateway         gateway.Gateway
	transactionRepo repository.PurchaseTransactionRepository
	redisClient     redis.RedisClient
	outboxTopic     string
	validate        *validator.Validate
	now             func() time.Time
}

func NewPaymentService(
	authenticator auth.Authenticator,
	gw gateway.Gateway,
	transactionRepo repository.PurchaseTransactionRepository,
	redisClient redis.RedisClient,
	outboxTopic string,
) *paymentService {
	return &paymentService{
		authenticator:   authenticator,
		gateway:         gw,
		transactionRepo: transactionRepo,
		redisClient:     redisClient,
		outboxTopic:     outboxTopic,
		validate:        validator.New(),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, token string, in CreateIntentInput) (*CreateIntentResult, error) {
	tracer := otel.Tracer("payment-service")
	ctx, span := tracer.Start(ctx, "CreateIntent")
	defer span.End()

	amount, currency, err := s.validateCreate(in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("invalid create intent request", "transaction_id", in.TransactionID, "error", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("transaction_id", in.TransactionID),
		attribute.String("currency", currency),
		attribute.Int64("amount", amount),
	)

	identity, err := s.authenticate(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, "authentication failed")
		return nil, err
	}
	ctx = auth.WithIdentity(ctx, identity)
	if identity.ID != in.UserID {
		flagOwnershipMismatch("create_intent", identity.ID, in.UserID, in.TransactionID)
	}

	intent, err := s.gateway.CreateIntent(ctx, models.CreateIntentParams{
		AmountMinor: amount,
		Currency:    currency,
		Description: fmt.Sprintf("Token V Wallet - %s", in.TransactionType),
		Metadata: map[string]string{
			"user_id":          in.UserID,
			"transaction_id":   in.TransactionID,
			"transaction_type": in.TransactionType,
			"recipient_id":     in.RecipientID,
		},
		IdempotencyKey: "purchase-" + in.TransactionID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway create intent failed")
		slog.Error("failed to create payment intent", "transaction_id", in.TransactionID, "user_id", in.UserID, "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("payment_intent_id", intent.ID))

	if err := s.transactionRepo.AttachGatewayIntent(ctx, in.TransactionID, intent.ID, intent.Status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attach gateway intent failed")
		slog.Error("payment intent created but transaction not updated",
			"transaction_id", in.TransactionID,
			"payment_intent_id", intent.ID,
			"error", err)
		return nil, err
	}

	slog.Info("payment intent ready",
		"transaction_id", in.TransactionID,
		"payment_intent_id", intent.ID,
		"user_id", in.UserID,
		"status", intent.Status)

	return &CreateIntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, token, clientSecret string) (*VerifyResult, error) {
	tracer := otel.Tracer("payment-service")
	ctx, span := tracer.Start(ctx, "VerifyPayment")
	defer span.End()

	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("invalid verify request", "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("payment_intent_id", intentID))

	identity, err := s.authenticate(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, "authentication failed")
		return nil, err
	}
	ctx = auth.WithIdentity(ctx, identity)

	result, _, err := s.reconcile(ctx, intentID, identity, false)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconciliation failed")
		return nil, err
	}
	return result, nil
}

func (s *paymentService) ReconcileIntent(ctx context.Context, intentID string) (*VerifyResult, error) {
	tracer := otel.Tracer("payment-service")
	ctx, span := tracer.Start(ctx, "ReconcileIntent")
	defer span.End()
	span.SetAttributes(attribute.String("payment_intent_id", intentID))

	result, _, err := s.reconcile(ctx, intentID, nil, false)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconciliation failed")
		return nil, err
	}
	return result, nil
}

// reconcile re-reads the intent from the gateway and applies the terminal transition to its
// transaction. With settledOnly, intents the gateway may still move forward are left pending
// and applied reports false.
func (s *paymentService) reconcile(ctx context.Context, intentID string, identity *models.Identity, settledOnly bool) (result *VerifyResult, applied bool, err error) {
	lockKey := fmt.Sprintf("intent:%s:verify", intentID)
	lockToken := uuid.NewString()
	ok, err := s.redisClient.SetNX(ctx, lockKey, lockToken, verifyLockTTL)
	if err != nil {
		slog.Error("failed to acquire verification lock", "payment_intent_id", intentID, "error", err)
		return nil, false, fmt.Errorf("failed to acquire verification lock: %w", err)
	}
	if !ok {
		slog.Warn("verification already in progress", "payment_intent_id", intentID)
		return nil, false, pkgerrors.ErrVerificationInProgress
	}
	defer func() {
		if _, err := s.redisClient.DelIfEqual(context.WithoutCancel(ctx), lockKey, lockToken); err != nil {
			slog.Error("failed to release verification lock", "payment_intent_id", intentID, "error", err)
		}
	}()

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		slog.Error("failed to retrieve payment intent", "payment_intent_id", intentID, "error", err)
		return nil, false, err
	}

	tx, err := s.transactionRepo.GetByGatewayTransactionID(ctx, intentID)
	if err != nil {
		slog.Error("failed to find transaction for payment intent", "payment_intent_id", intentID, "error", err)
		return nil, false, err
	}
	result = &VerifyResult{TransactionID: tx.ID, PaymentStatus: intent.Status}

	if identity != nil && identity.ID != tx.UserID {
		flagOwnershipMismatch("verify_payment", identity.ID, tx.UserID, tx.ID)
	}

	if tx.Status.Terminal() {
		slog.Info("transaction already finalized, skipping writes",
			"transaction_id", tx.ID,
			"payment_intent_id", intentID,
			"transaction_status", tx.Status,
			"gateway_status", intent.Status)
		return result, false, nil
	}

	if settledOnly && !settled(intent.Status) {
		slog.Info("payment intent not settled, leaving transaction pending",
			"transaction_id", tx.ID,
			"payment_intent_id", intentID,
			"gateway_status", intent.Status)
		return result, false, nil
	}

	if intent.Status == models.IntentStatusSucceeded {
		err = s.complete(ctx, tx, intent)
	} else {
		err = s.fail(ctx, tx, intent)
	}
	if stderrors.Is(err, pkgerrors.ErrTransactionFinalized) {
		slog.Info("transaction finalized concurrently, skipping writes", "transaction_id", tx.ID, "payment_intent_id", intentID)
		return result, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	observability.PaymentVerifications.WithLabelValues(intent.Status).Inc()
	return result, true, nil
}

func (s *paymentService) complete(ctx context.Context, tx *models.PurchaseTransaction, intent *models.PaymentIntent) error {
	now := s.now()
	event, err := s.purchaseEvent(models.EventPurchaseCompleted, tx, intent, now)
	if err != nil {
		return err
	}

	err = s.transactionRepo.Complete(ctx, models.Completion{
		TransactionID: tx.ID,
		GatewayStatus: intent.Status,
		CompletedAt:   now,
		Credit: models.WalletCredit{
			UserID:      tx.UserID,
			Amount:      tx.TokenAmount,
			Type:        models.CreditTypeCredit,
			Description: fmt.Sprintf("Token purchase via Stripe - %s", intent.ID),
			ReferenceID: tx.ID,
		},
		Event: event,
	})
	if err != nil {
		if !stderrors.Is(err, pkgerrors.ErrTransactionFinalized) {
			slog.Error("failed to complete transaction and credit wallet",
				"transaction_id", tx.ID,
				"user_id", tx.UserID,
				"payment_intent_id", intent.ID,
				"error", err)
		}
		return err
	}

	observability.WalletCredits.Inc()
	slog.Info("purchase completed",
		"transaction_id", tx.ID,
		"user_id", tx.UserID,
		"token_amount", tx.TokenAmount.String(),
		"payment_intent_id", intent.ID)
	return nil
}

func (s *paymentService) fail(ctx context.Context, tx *models.PurchaseTransaction, intent *models.PaymentIntent) error {
	event, err := s.purchaseEvent(models.EventPurchaseFailed, tx, intent, s.now())
	if err != nil {
		return err
	}

	err = s.transactionRepo.Fail(ctx, models.Failure{
		TransactionID: tx.ID,
		GatewayStatus: intent.Status,
		Event:         event,
	})
	if err != nil {
		if !stderrors.Is(err, pkgerrors.ErrTransactionFinalized) {
			slog.Error("failed to mark transaction failed", "transaction_id", tx.ID, "payment_intent_id", intent.ID, "error", err)
		}
		return err
	}

	slog.Info("purchase failed", "transaction_id", tx.ID, "payment_intent_id", intent.ID, "gateway_status", intent.Status)
	return nil
}

func (s *paymentService) purchaseEvent(eventType string, tx *models.PurchaseTransaction, intent *models.PaymentIntent, at time.Time) (models.OutboxEvent, error) {
	payload, err := json.Marshal(models.PurchaseEvent{
		EventType:       eventType,
		TransactionID:   tx.ID,
		UserID:          tx.UserID,
		TokenAmount:     tx.TokenAmount.String(),
		PaymentIntentID: intent.ID,
		GatewayStatus:   intent.Status,
		OccurredAt:      at.Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("failed to marshal purchase event", "transaction_id", tx.ID, "error", err)
		return models.OutboxEvent{}, fmt.Errorf("failed to marshal purchase event: %w", err)
	}
	return models.OutboxEvent{
		EventID: uuid.NewString(),
		Topic:   s.outboxTopic,
		Key:     tx.ID,
		Payload: payload,
	}, nil
}

func (s *paymentService) authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, pkgerrors.ErrMissingCredential
	}
	identity, err := s.authenticator.Authenticate(ctx, token)
	if err != nil || identity == nil {
		slog.Warn("user authentication failed", "error", err)
		return nil, pkgerrors.ErrAuthFailure
	}
	return identity, nil
}

func (s *paymentService) validateCreate(in CreateIntentInput) (int64, string, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return 0, "", err
	}
	currency, err := s.parseCurrency(in.Currency)
	if err != nil {
		return 0, "", err
	}
	if err := s.validate.Struct(in); err != nil {
		return 0, "", pkgerrors.ErrMissingTransactionData
	}
	return amount, currency, nil
}

// parseCurrency accepts only a non-empty JSON string.
func (s *paymentService) parseCurrency(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", pkgerrors.ErrInvalidCurrency
	}
	var currency string
	if err := json.Unmarshal(raw, &currency); err != nil {
		return "", pkgerrors.ErrInvalidCurrency
	}
	if err := s.validate.Var(currency, "required"); err != nil {
		return "", pkgerrors.ErrInvalidCurrency
	}
	return currency, nil
}

// parseAmount accepts a positive JSON number expressed in the currency's minor unit.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || raw[0] == '"' || string(raw) == "null" {
		return 0, pkgerrors.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil || !amount.IsPositive() || !amount.IsInteger() {
		return 0, pkgerrors.ErrInvalidAmount
	}
	minor := amount.IntPart()
	if !decimal.NewFromInt(minor).Equal(amount) {
		return 0, pkgerrors.ErrInvalidAmount
	}
	return minor, nil
}

// settled reports whether the gateway will not move the intent any further.
func settled(status string) bool {
	return status == models.IntentStatusSucceeded || status == models.IntentStatusCanceled
}

// flagOwnershipMismatch records callers acting on another user's transaction. The request is
// not rejected; ownership enforcement is an open decision.
func flagOwnershipMismatch(operation, callerID, ownerID, transactionID string) {
	observability.OwnershipMismatches.WithLabelValues(operation).Inc()
	slog.Warn("caller is not the transaction owner",
		"operation", operation,
		"caller_id", callerID,
		"owner_id", ownerID,
		"transaction_id", transactionID)
}
