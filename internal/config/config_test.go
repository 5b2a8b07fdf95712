package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "spec-1", cfg.WorkerID)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "spec.filter", cfg.StreamKey)
	assert.Equal(t, "spec-workers", cfg.ConsumerGroup)
	assert.Equal(t, "spec.filtered", cfg.ResultStream)
	assert.Equal(t, time.Second, cfg.BlockTime)
	assert.Equal(t, 200_000, cfg.HighPriceThreshold)
	assert.Equal(t, 8083, cfg.HealthPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WORKER_ID", "spec-7")
	t.Setenv("HIGH_PRICE_THRESHOLD", "150000")
	t.Setenv("BLOCK_TIME", "250ms")
	t.Setenv("REPORT_TEMPLATE", "{{spec}}: {{len matched}}")
	t.Setenv("REDIS_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "spec-7", cfg.WorkerID)
	assert.Equal(t, 150_000, cfg.HighPriceThreshold)
	assert.Equal(t, 250*time.Millisecond, cfg.BlockTime)
	assert.Equal(t, "{{spec}}: {{len matched}}", cfg.ReportTemplate)
	assert.NotContains(t, cfg.String(), "secret")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"negative threshold", "HIGH_PRICE_THRESHOLD", "-1", "HIGH_PRICE_THRESHOLD"},
		{"bad log level", "LOG_LEVEL", "trace", "LOG_LEVEL"},
		{"bad port", "HEALTH_PORT", "70000", "HEALTH_PORT"},
		{"zero block time", "BLOCK_TIME", "0s", "BLOCK_TIME"},
		{"broken template", "REPORT_TEMPLATE", "{{#if x}}", "REPORT_TEMPLATE"},
		{"unparseable int", "REDIS_DB", "zero", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
