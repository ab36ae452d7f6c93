package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PRIZE_POSTGRES_USER", "prize")
	t.Setenv("PRIZE_POSTGRES_PASSWORD", "secret")
	t.Setenv("PRIZE_POSTGRES_HOST", "db")
	t.Setenv("PRIZE_POSTGRES_DB", "prizeledger")
	t.Setenv("PRIZE_REDIS_HOST", "redis")
	t.Setenv("PRIZE_REDIS_PORT", "6379")
	t.Setenv("PRIZE_BUS_PROVIDER", "nats")
	t.Setenv("PRIZE_NATS_HOST", "nats")
	t.Setenv("PRIZE_NATS_PORT", "4222")
	t.Setenv("PRIZE_ADMIN_KEY", "k")
}

func TestNew_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "postgres://prize:secret@db:5432/prizeledger?sslmode=disable", cfg.DSN())
	assert.Equal(t, "redis:6379", cfg.RedisAddr())
	assert.Equal(t, "nats://nats:4222", cfg.BusAddr())
	assert.Equal(t, "nats", cfg.WorkerProvider)
	assert.Equal(t, ":50051", cfg.GRPCListenAddr())
	assert.True(t, cfg.MaxPrize.Equal(decimal.NewFromInt(500)))
	assert.True(t, cfg.HouseEdge.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, int64(10), cfg.MaxCodeBet)
	assert.Equal(t, 5*time.Minute, cfg.TwoFactorTTL)

	_, err = cfg.ApiAddr()
	assert.Error(t, err)
}

func TestNew_ApiEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PRIZE_API_ENABLED", "true")
	t.Setenv("PRIZE_API_PORT", "8080")
	t.Setenv("PRIZE_TWO_FACTOR_TTL", "90s")

	cfg, err := New()
	require.NoError(t, err)
	addr, err := cfg.ApiAddr()
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)
	assert.Equal(t, 90*time.Second, cfg.TwoFactorTTL)
}

func TestNew_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bus provider": {"PRIZE_BUS_PROVIDER", "kafka"},
		"admin key":    {"PRIZE_ADMIN_KEY", ""},
		"house edge":   {"PRIZE_HOUSE_EDGE", "100"},
		"zero edge":    {"PRIZE_HOUSE_EDGE", "0"},
		"nats worker":  {"PRIZE_NATS_HOST", ""},
		"max prize":    {"PRIZE_MAX_PRIZE", "abc"},
		"code bet":     {"PRIZE_MAX_CODE_BET", "0"},
		"redis":        {"PRIZE_REDIS_HOST", ""},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := New()
			assert.Error(t, err)
		})
	}
}
