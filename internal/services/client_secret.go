package service

import (
	"strings"

	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
)

const clientSecretMarker = "_secret_"

// IntentIDFromClientSecret recovers the payment intent id that Stripe encodes as the prefix
// of a client secret ("pi_123_secret_abc" -> "pi_123").
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	if clientSecret == "" {
		return "", pkgerrors.ErrMissingClientSecret
	}
	id, _, found := strings.Cut(clientSecret, clientSecretMarker)
	if !found || id == "" {
		return "", pkgerrors.ErrClientSecretMalformed
	}
	return id, nil
}
