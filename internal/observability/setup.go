package observability

import (
	"context"

	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/observability"
)

// Setup initializes logs, metrics and traces and returns the tracer shutdown func.
func Setup(serviceName, otlpEndpoint string) func(context.Context) error {
	observability.InitLogger()
	observability.InitMetrics()
	return observability.InitTracing(serviceName, otlpEndpoint)
}
