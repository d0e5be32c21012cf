package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/TokenWalletPayments/internal/models"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Gateway is the subset of the payment provider the service depends on.
type Gateway interface {
	CreateIntent(ctx context.Context, params models.CreateIntentParams) (*models.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
}

type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a client for the given secret key. A nil backends value uses
// Stripe's production endpoints.
func NewStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, params models.CreateIntentParams) (*models.PaymentIntent, error) {
	tracer := otel.Tracer("stripe-gateway")
	ctx, span := tracer.Start(ctx, "CreatePaymentIntent")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("amount", params.AmountMinor),
		attribute.String("currency", params.Currency),
	)

	p := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.AmountMinor),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(params.Description),
	}
	p.Context = ctx
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}
	if params.IdempotencyKey != "" {
		p.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create payment intent failed")
		slog.Error("failed to create payment intent", "currency", params.Currency, "error", err)
		return nil, wrapStripeError(err)
	}

	span.SetAttributes(attribute.String("payment_intent_id", pi.ID))
	slog.Info("payment intent created", "payment_intent_id", pi.ID, "status", pi.Status)
	return toIntent(pi), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	tracer := otel.Tracer("stripe-gateway")
	ctx, span := tracer.Start(ctx, "RetrievePaymentIntent")
	defer span.End()
	span.SetAttributes(attribute.String("payment_intent_id", id))

	p := &stripe.PaymentIntentParams{}
	p.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieve payment intent failed")
		slog.Error("failed to retrieve payment intent", "payment_intent_id", id, "error", err)
		return nil, wrapStripeError(err)
	}

	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *models.PaymentIntent {
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return fmt.Errorf("%w: %s", pkgerrors.ErrGateway, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", pkgerrors.ErrGateway, err)
}
