package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"SUPABASE_URL":        "https://project.supabase.co/",
		"SUPABASE_ANON_KEY":   "anon-key",
		"SUPABASE_JWT_SECRET": "jwt-secret",
		"STRIPE_SECRET_KEY":   "sk_test_123",
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv(envMap(requiredEnv()))
		require.NoError(t, err)

		assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
		assert.Equal(t, "https://project.supabase.co/auth/v1", cfg.TokenIssuer())
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "purchase-transactions", cfg.OutboxTopic)
		assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	})

	t.Run("overrides", func(t *testing.T) {
		env := requiredEnv()
		env["KAFKA_BROKER"] = "kafka-1:9092, kafka-2:9092"
		env["OUTBOX_POLL_INTERVAL"] = "500ms"
		env["HTTP_ADDR"] = ":9000"

		cfg, err := FromEnv(envMap(env))
		require.NoError(t, err)

		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
		assert.Equal(t, ":9000", cfg.HTTPAddr)
	})

	t.Run("missing required keys", func(t *testing.T) {
		env := requiredEnv()
		delete(env, "STRIPE_SECRET_KEY")
		delete(env, "SUPABASE_ANON_KEY")

		cfg, err := FromEnv(envMap(env))
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_ANON_KEY")
		assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
	})

	t.Run("invalid poll interval", func(t *testing.T) {
		env := requiredEnv()
		env["OUTBOX_POLL_INTERVAL"] = "soon"

		_, err := FromEnv(envMap(env))
		assert.ErrorContains(t, err, "OUTBOX_POLL_INTERVAL")
	})
}
