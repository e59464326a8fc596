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

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Fees.Enabled)
	assert.Equal(t, 1.5, cfg.Fees.Percentage)
	assert.Equal(t, 0.001, cfg.Fees.MinFee)
	assert.Equal(t, 2.0, cfg.Fees.MaxFee)
	assert.Equal(t, 245.32, cfg.DevFund.Balance)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENV", "production")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("FEE_PERCENTAGE", "0.75")
	t.Setenv("DEV_FUND_BALANCE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 0.75, cfg.Fees.Percentage)
	assert.Equal(t, 10.0, cfg.DevFund.Balance)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("AEGIS_TEST_VALUE", "x")
	t.Setenv("AEGIS_TEST_INT", "12")
	t.Setenv("AEGIS_TEST_BAD_INT", "twelve")

	assert.Equal(t, "x", GetEnv("AEGIS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("AEGIS_TEST_MISSING", "fallback"))
	assert.Equal(t, 12, GetIntEnv("AEGIS_TEST_INT", 1))
	assert.Equal(t, 1, GetIntEnv("AEGIS_TEST_BAD_INT", 1))
}
