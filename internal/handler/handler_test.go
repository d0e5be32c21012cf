package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	service "github.com/honeynil/TokenWalletPayments/internal/services"
	servicemocks "github.com/honeynil/TokenWalletPayments/internal/services/mocks"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *servicemocks.MockPaymentService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := servicemocks.NewMockPaymentService(ctrl)
	r := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r, svc
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

var bearer = map[string]string{"Authorization": "Bearer jwt"}

func TestPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/create-payment-intent", "/verify-payment"} {
		rec := do(r, http.MethodOptions, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "ok", rec.Body.String(), path)
		assertCORS(t, rec)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().CreateIntent(gomock.Any(), "jwt", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in service.CreateIntentInput) (*service.CreateIntentResult, error) {
				assert.Equal(t, "100", string(in.Amount))
				assert.Equal(t, `"usd"`, string(in.Currency))
				assert.Equal(t, "tx-1", in.TransactionID)
				return &service.CreateIntentResult{ClientSecret: "pi_1_secret_x", PaymentIntentID: "pi_1"}, nil
			})

		rec := do(r, http.MethodPost, "/create-payment-intent",
			`{"amount":100,"currency":"usd","transactionId":"tx-1","userId":"u-1","transactionType":"purchase"}`, bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
		assertCORS(t, rec)

		var res service.CreateIntentResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, "pi_1", res.PaymentIntentID)
		assert.Equal(t, "pi_1_secret_x", res.ClientSecret)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := do(r, http.MethodPost, "/create-payment-intent", `{"amount":100}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertCORS(t, rec)
		assert.Equal(t, "Missing Authorization header", decodeError(t, rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := do(r, http.MethodPost, "/create-payment-intent", `{not json`, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, decodeError(t, rec))
	})

	t.Run("non-string currency reaches validation", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().CreateIntent(gomock.Any(), "jwt", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in service.CreateIntentInput) (*service.CreateIntentResult, error) {
				assert.Equal(t, "5", string(in.Currency))
				return nil, pkgerrors.ErrInvalidCurrency
			})

		rec := do(r, http.MethodPost, "/create-payment-intent",
			`{"amount":100,"currency":5,"transactionId":"tx-1","userId":"u-1"}`, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid currency", decodeError(t, rec))
	})

	t.Run("service errors are 400 with message", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().CreateIntent(gomock.Any(), "jwt", gomock.Any()).Return(nil, pkgerrors.ErrInvalidAmount)

		rec := do(r, http.MethodPost, "/create-payment-intent", `{"amount":0}`, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid amount", decodeError(t, rec))
	})
}

func TestVerifyPayment(t *testing.T) {
	t.Run("failed payment still answers 200", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().VerifyPayment(gomock.Any(), "jwt", "pi_1_secret_x").
			Return(&service.VerifyResult{TransactionID: "tx-1", PaymentStatus: "requires_payment_method"}, nil)

		rec := do(r, http.MethodPost, "/verify-payment", `{"clientSecret":"pi_1_secret_x"}`, bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
		assertCORS(t, rec)

		var res service.VerifyResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, service.VerifyResult{TransactionID: "tx-1", PaymentStatus: "requires_payment_method"}, res)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := do(r, http.MethodPost, "/verify-payment", `{"clientSecret":"pi_1_secret_x"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing Authorization header", decodeError(t, rec))
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().VerifyPayment(gomock.Any(), "jwt", "pi_9_secret_x").Return(nil, pkgerrors.ErrTransactionNotFound)

		rec := do(r, http.MethodPost, "/verify-payment", `{"clientSecret":"pi_9_secret_x"}`, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Transaction not found", decodeError(t, rec))
	})
}

func TestUnroutedRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/verify-payment", "Method not allowed"},
		{http.MethodPut, "/verify-payment", "Method not allowed"},
		{http.MethodGet, "/create-payment-intent", "Method not allowed"},
		{http.MethodPost, "/unknown", "Not found"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(r, tc.method, tc.path, "", bearer)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assertCORS(t, rec)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.want, decodeError(t, rec))
		})
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
