package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/TokenWalletPayments/internal/handler"
	servicemocks "github.com/honeynil/TokenWalletPayments/internal/services/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := SetupRouter(handler.NewHandler(servicemocks.NewMockPaymentService(ctrl)))

	t.Run("preflight is counted", func(t *testing.T) {
		before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodOptions, "/verify-payment", "200"))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/verify-payment", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodOptions, "/verify-payment", "200")))
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})
}
