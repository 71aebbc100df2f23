package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "http://llm.local/v1")
	t.Setenv("WORKER_METRICS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, 20*time.Second, cfg.GenerationTimeout)
	require.Equal(t, 10*time.Minute, cfg.StatsCacheTTL)
	require.Equal(t, 30, cfg.ConsultRateLimit)
	require.Empty(t, cfg.KafkaBrokers)
	require.Empty(t, cfg.WorkerMetricsAddr)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "http://llm.local/v1")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GENERATION_TIMEOUT", "5s")
	t.Setenv("STATS_CACHE_TTL", "0")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("WORKER_METRICS_ADDR", ":9091")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, 5*time.Second, cfg.GenerationTimeout)
	require.Zero(t, cfg.StatsCacheTTL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, ":9091", cfg.WorkerMetricsAddr)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing llm base url", func(t *testing.T) {
		t.Setenv("LLM_BASE_URL", "")
		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("non-positive generation timeout", func(t *testing.T) {
		t.Setenv("LLM_BASE_URL", "http://llm.local/v1")
		t.Setenv("GENERATION_TIMEOUT", "0s")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestInTestMode(t *testing.T) {
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	require.True(t, InTestMode())

	t.Setenv(testModeEnv, "true")
	RefreshTestMode()
	require.True(t, InTestMode())

	t.Setenv(testModeEnv, "")
	RefreshTestMode()
	require.False(t, InTestMode())

	t.Setenv(testModeEnv, "maybe")
	RefreshTestMode()
	require.False(t, InTestMode())
}
