package service

import (
	"testing"

	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
		err    error
	}{
		{name: "stripe format", secret: "pi_3OabcXYZ_secret_Kq9z", want: "pi_3OabcXYZ"},
		{name: "first marker wins", secret: "pi_1_secret_a_secret_b", want: "pi_1"},
		{name: "empty", secret: "", err: pkgerrors.ErrMissingClientSecret},
		{name: "no marker", secret: "pi_123", err: pkgerrors.ErrClientSecretMalformed},
		{name: "empty prefix", secret: "_secret_abc", err: pkgerrors.ErrClientSecretMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntentIDFromClientSecret(tt.secret)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
