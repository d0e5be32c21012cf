package models

const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusCanceled  = "canceled"
)

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

type CreateIntentParams struct {
	AmountMinor    int64
	Currency       string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}
