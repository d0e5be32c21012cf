package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/TokenWalletPayments/internal/api"
	"github.com/honeynil/TokenWalletPayments/internal/config"
	"github.com/honeynil/TokenWalletPayments/internal/handler"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/auth"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/gateway"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/kafka"
	"github.com/honeynil/TokenWalletPayments/internal/infrastructure/redis"
	"github.com/honeynil/TokenWalletPayments/internal/observability"
	core "github.com/honeynil/TokenWalletPayments/internal/repository/postgres"
	service "github.com/honeynil/TokenWalletPayments/internal/services"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	shutdownTracing := observability.Setup("token-wallet-payments", cfg.OTLPEndpoint)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to open Postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactionRepo := core.NewPostgresPurchaseTransactionRepository(db)
	outboxRepo := core.NewPostgresOutboxRepository(db)
	redisClient := redis.NewClient(cfg.RedisAddr)
	defer redisClient.Close()
	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	svc := service.NewPaymentService(
		auth.NewSupabaseAuthenticator(cfg.SupabaseJWTSecret, cfg.TokenIssuer(), cfg.SupabaseAnonKey),
		gateway.NewStripeGateway(cfg.StripeSecretKey, nil),
		transactionRepo,
		redisClient,
		cfg.OutboxTopic,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay := service.NewOutboxRelay(outboxRepo, producer, cfg.OutboxPollInterval)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relay.Run(ctx)
	}()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRouter(handler.NewHandler(svc)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	<-relayDone
	slog.Info("server stopped")
}
