package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/config"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/auth"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/gateway"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/redis"
	"github.com/honeynil/TokenWalletPayments/internal/observability"
	core "github.com/honeynil/TokenWalletPayments/internal/repository/postgres"
	service "github.com/honeynil/TokenWalletPayments/internal/services"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "reconcile",
		Short:        "Operator tooling for token purchases stuck in pending",
		SilenceUsage: true,
	}
	root.AddCommand(newSweepCmd(), newIntentCmd())
	return root
}

func newSweepCmd() *cobra.Command {
	var (
		olderThan time.Duration
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Finalize pending purchases whose payment intent has settled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc service.PaymentService) error {
				report, err := svc.SweepPending(ctx, olderThan, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, report)
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 15*time.Minute, "only pending purchases created before now minus this")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum purchases to reconcile")
	return cmd
}

func newIntentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intent <payment-intent-id>",
		Short: "Reconcile a single payment intent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc service.PaymentService) error {
				result, err := svc.ReconcileIntent(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}
}

func withService(parent context.Context, fn func(context.Context, service.PaymentService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracing := observability.Setup("token-wallet-reconcile", cfg.OTLPEndpoint)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to open Postgres: %w", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(cfg.RedisAddr)
	defer redisClient.Close()

	svc := service.NewPaymentService(
		auth.NewSupabaseAuthenticator(cfg.SupabaseJWTSecret, cfg.TokenIssuer(), cfg.SupabaseAnonKey),
		gateway.NewStripeGateway(cfg.StripeSecretKey, nil),
		core.NewPostgresPurchaseTransactionRepository(db),
		redisClient,
		cfg.OutboxTopic,
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := fn(ctx, svc); err != nil {
		slog.Error("reconcile failed", "error", err)
		return err
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
