package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseJWTSecret  string
	StripeSecretKey    string
	PostgresDSN        string
	RedisAddr          string
	KafkaBrokers       []string
	HTTPAddr           string
	OTLPEndpoint       string
	OutboxTopic        string
	OutboxPollInterval time.Duration
}

// Load reads the process environment once, after an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using process environment", "error", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup so tests need not mutate the environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		SupabaseURL:       strings.TrimRight(getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:   getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: getenv("SUPABASE_JWT_SECRET"),
		StripeSecretKey:   getenv("STRIPE_SECRET_KEY"),
		PostgresDSN:       getenv("POSTGRES_DSN"),
		RedisAddr:         getenv("REDIS_ADDR"),
		KafkaBrokers:      splitList(getenv("KAFKA_BROKER")),
		HTTPAddr:          getenv("HTTP_ADDR"),
		OTLPEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OutboxTopic:       getenv("OUTBOX_TOPIC"),
	}

	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if len(cfg.KafkaBrokers) == 0 {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.OutboxTopic == "" {
		cfg.OutboxTopic = "purchase-transactions"
	}

	cfg.OutboxPollInterval = 2 * time.Second
	if raw := getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL %q", raw)
		}
		cfg.OutboxPollInterval = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("config loaded",
		"supabase_url", cfg.SupabaseURL,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"http_addr", cfg.HTTPAddr,
		"outbox_topic", cfg.OutboxTopic)
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseAnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if c.SupabaseJWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if c.StripeSecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TokenIssuer is the iss claim Supabase Auth puts on access tokens.
func (c *Config) TokenIssuer() string {
	return c.SupabaseURL + "/auth/v1"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
