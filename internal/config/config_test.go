package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT", "API_KEY", "ADMIN_API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "ENVIRONMENT",
	"TRUSTED_PROXIES", "RATE_LIMIT", "CATALOG_PATH",
	"DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "SQLITE_PATH",
	"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
	"REDIS_ADDR", "REDIS_STREAM", "INSTANCE_ID", "EVENT_DEADLETTER_PATH",
	"CASINO_FALLBACK_PROBABILITY", "CASINO_GOVERNED_PROBABILITY", "CASINO_MAX_PROFIT_RATIO",
	"CASINO_MAX_PAYOUT_ABSOLUTE", "CASINO_MINES_INSTANT_LOSS_SHARE", "CASINO_MIN_BET",
	"CASINO_MAX_BET", "CASINO_STARTING_CREDITS", "CASINO_SETTINGS_TIMEOUT", "CASINO_LEDGER_TIMEOUT",
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	unsetAll(t, configEnvVars...)
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, DriverPostgres, cfg.DBDriver)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Empty(t, cfg.RedisAddr)
		assert.NotEmpty(t, cfg.InstanceID)

		assert.Equal(t, DefaultFallbackProbability, cfg.Casino.FallbackProbability)
		assert.Equal(t, DefaultMaxProfitRatio, cfg.Casino.MaxProfitRatio)
		assert.Zero(t, cfg.Casino.MaxPayoutAbsolute)
		assert.Equal(t, "1", cfg.Casino.MinBet.String())
		assert.True(t, cfg.Casino.MaxBet.IsZero())
		assert.Equal(t, "1000", cfg.Casino.StartingCredits.String())
		assert.Equal(t, DefaultLedgerTimeout, cfg.Casino.LedgerTimeout)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("ADMIN_API_KEY", "admin-key")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/c.db")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("CASINO_GOVERNED_PROBABILITY", "0.1")
		t.Setenv("CASINO_MAX_PAYOUT_ABSOLUTE", "50000")
		t.Setenv("CASINO_MIN_BET", "0.50")
		t.Setenv("CASINO_MAX_BET", "500")
		t.Setenv("CASINO_LEDGER_TIMEOUT", "750ms")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "admin-key", cfg.AdminAPIKey)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, "/tmp/c.db", cfg.SQLitePath)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 0.1, cfg.Casino.GovernedProbability)
		assert.Equal(t, 50000.0, cfg.Casino.MaxPayoutAbsolute)
		assert.Equal(t, "0.5", cfg.Casino.MinBet.String())
		assert.Equal(t, "500", cfg.Casino.MaxBet.String())
		assert.Equal(t, 750*time.Millisecond, cfg.Casino.LedgerTimeout)
	})

	errorCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing API_KEY", map[string]string{}, "API_KEY"},
		{"invalid PORT", map[string]string{"API_KEY": "k", "PORT": "not-a-number"}, ErrMsgInvalidPort},
		{"negative PORT", map[string]string{"API_KEY": "k", "PORT": "-1"}, ErrMsgInvalidPort},
		{"PORT too large", map[string]string{"API_KEY": "k", "PORT": "70000"}, ErrMsgInvalidPort},
		{"unknown driver", map[string]string{"API_KEY": "k", "DB_DRIVER": "mysql"}, ErrMsgUnsupportedDriver},
		{"malformed min bet", map[string]string{"API_KEY": "k", "CASINO_MIN_BET": "ten"}, "CASINO_MIN_BET"},
		{"negative starting credits", map[string]string{"API_KEY": "k", "CASINO_STARTING_CREDITS": "-5"}, "CASINO_STARTING_CREDITS"},
		{"max below min", map[string]string{"API_KEY": "k", "CASINO_MIN_BET": "10", "CASINO_MAX_BET": "5"}, ErrMsgBetRange},
		{"probability above one", map[string]string{"API_KEY": "k", "CASINO_FALLBACK_PROBABILITY": "1.5"}, "CASINO_FALLBACK_PROBABILITY"},
		{"negative share", map[string]string{"API_KEY": "k", "CASINO_MINES_INSTANT_LOSS_SHARE": "-0.1"}, "CASINO_MINES_INSTANT_LOSS_SHARE"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		unsetAll(t, "TEST_INT_VAR")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_VAR", 42))
		t.Setenv("TEST_INT_VAR", "-10")
		assert.Equal(t, -10, getEnvAsInt("TEST_INT_VAR", 42))
		t.Setenv("TEST_INT_VAR", "42.5")
		assert.Equal(t, 10, getEnvAsInt("TEST_INT_VAR", 10))
	})

	t.Run("float", func(t *testing.T) {
		unsetAll(t, "TEST_FLOAT_VAR")
		assert.Equal(t, 0.3, getEnvAsFloat("TEST_FLOAT_VAR", 0.3))
		t.Setenv("TEST_FLOAT_VAR", "0.25")
		assert.Equal(t, 0.25, getEnvAsFloat("TEST_FLOAT_VAR", 0.3))
		t.Setenv("TEST_FLOAT_VAR", "abc")
		assert.Equal(t, 0.3, getEnvAsFloat("TEST_FLOAT_VAR", 0.3))
	})

	t.Run("duration", func(t *testing.T) {
		unsetAll(t, "TEST_DURATION_VAR")
		assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		t.Setenv("TEST_DURATION_VAR", "1h30m")
		assert.Equal(t, 90*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		t.Setenv("TEST_DURATION_VAR", "30")
		assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute), "bare numbers have no unit")
	})

	t.Run("list", func(t *testing.T) {
		unsetAll(t, "TEST_LIST_VAR")
		assert.Nil(t, getEnvAsList("TEST_LIST_VAR"))
		t.Setenv("TEST_LIST_VAR", " 10.0.0.1, ,10.0.0.2 ")
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, getEnvAsList("TEST_LIST_VAR"))
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "casino",
		DBPassword: "p@ss",
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBName:     "chips",
	}
	assert.Equal(t, "postgres://casino:p@ss@db.internal:5433/chips?sslmode=disable", cfg.GetDBConnString())
}
