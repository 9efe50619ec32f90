package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RUN_ADDRESS", "LOG_LEVEL", "STORAGE", "DATABASE_URL", "REDIS_ADDR",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "OTEL_HOST", "SEED_FILE"} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
			os.Unsetenv(k)
		}
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.RunAddress)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "orders", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestFlagsThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUN_ADDRESS", ":9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Parse([]string{"-a", ":7000", "-storage", "postgres", "-d", "postgres://x"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.RunAddress, "env wins over flags")
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	_, err := Parse([]string{"-storage", "postgres"})
	assert.Error(t, err)

	_, err = Parse([]string{"-storage", "sqlite"})
	assert.Error(t, err)

	_, err = Parse([]string{"-unknown"})
	assert.Error(t, err)

	cfg := &Config{Storage: StorageMemory, KafkaBrokers: []string{"k"}}
	assert.Error(t, cfg.Validate())
}
