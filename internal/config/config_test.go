package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "STORE_DRIVER", "REDIS_ADDR", "LOCK_TTL", "DEFAULT_DURATION_MINUTES",
		"MIN_GAP_MINUTES", "MAX_OPTIMIZE_ACTIVITIES", "OPTIMIZE_RATE_PER_MINUTE", "CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSqlite, cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
	assert.Equal(t, 60*time.Minute, cfg.DefaultDuration)
	assert.Equal(t, 15*time.Minute, cfg.MinGap)
	assert.Equal(t, 200, cfg.MaxOptimizeActivities)
	assert.Equal(t, 30, cfg.OptimizeRatePerMinute)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LOCK_TTL", "5s")
	t.Setenv("DEFAULT_DURATION_MINUTES", "45")
	t.Setenv("MIN_GAP_MINUTES", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Equal(t, 45*time.Minute, cfg.DefaultDuration)
	assert.Equal(t, time.Duration(0), cfg.MinGap)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown driver", "STORE_DRIVER", "oracle"},
		{"postgres without url", "STORE_DRIVER", "postgres"},
		{"bad duration", "LOCK_TTL", "soon"},
		{"zero ttl", "LOCK_TTL", "0s"},
		{"bad int", "MAX_OPTIMIZE_ACTIVITIES", "many"},
		{"negative gap", "MIN_GAP_MINUTES", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
