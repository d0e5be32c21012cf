package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/auth"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/observability"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const applyClaimsQuery = `SELECT set_config('request.jwt.claims', $1, true), set_config('role', $2, true)`

// instrument starts a span and returns a func recording metrics for the call's outcome.
func instrument(ctx context.Context, tracerName, method string) (context.Context, trace.Span, func(error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, method)
	start := time.Now()
	return ctx, span, func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		observability.RepositoryCalls.WithLabelValues(method, status).Inc()
		observability.RepositoryDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		span.End()
	}
}

// runInTx executes fn in a transaction scoped to the caller from ctx, so Supabase row level
// security sees the same claims PostgREST would. Calls without an identity keep the
// connection's own role.
func runInTx(ctx context.Context, db *sql.DB, method string, fn func(tx *sql.Tx) error) (err error) {
	dbTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", method, "error", err)
		return datastoreError(method, "begin transaction", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := dbTx.Rollback(); rbErr != nil {
			slog.Error("rollback failed", "method", method, "error", rbErr)
			err = fmt.Errorf("rollback failed: %v; original error: %w", rbErr, err)
		}
	}()

	if err = applyClaims(ctx, dbTx); err != nil {
		return datastoreError(method, "apply caller claims", err)
	}

	if err = fn(dbTx); err != nil {
		return err
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", method, "error", err)
		return datastoreError(method, "commit transaction", err)
	}
	return nil
}

func applyClaims(ctx context.Context, tx *sql.Tx) error {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil
	}

	claims := identity.Claims
	if claims == nil {
		claims = map[string]interface{}{"sub": identity.ID, "role": identity.Role}
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	role := identity.Role
	if role == "" {
		role = "authenticated"
	}

	_, err = tx.ExecContext(ctx, applyClaimsQuery, string(raw), role)
	return err
}

// datastoreError wraps a driver error into ErrDatastore, logging the Postgres code when known.
func datastoreError(method, op string, err error) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		slog.Error("postgres error", "method", method, "op", op, "pg_code", string(pqErr.Code), "detail", pqErr.Detail, "error", err)
		return fmt.Errorf("%w: %s: %s", pkgerrors.ErrDatastore, op, pqErr.Message)
	}
	slog.Error("datastore call failed", "method", method, "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", pkgerrors.ErrDatastore, op, err)
}
