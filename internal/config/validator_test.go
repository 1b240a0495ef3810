package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // registers restore
		os.Unsetenv(k)
	}
}

func healthyConfig() *Config {
	return &Config{
		APIKey:      "api",
		AdminAPIKey: "admin",
		Environment: "dev",
		DBDriver:    DriverPostgres,
		DBHost:      "db",
		DBName:      "casino",
		DBUser:      "casino",
		DBPassword:  "s3cret",
		Casino: CasinoConfig{
			FallbackProbability: DefaultFallbackProbability,
			GovernedProbability: DefaultGovernedProbability,
			MaxProfitRatio:      DefaultMaxProfitRatio,
		},
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   []string
	}{
		{"healthy config", func(c *Config) {}, nil},
		{
			"admin routes disabled",
			func(c *Config) { c.AdminAPIKey = "" },
			[]string{"ADMIN_API_KEY is not set, admin routes are disabled"},
		},
		{
			"shared admin key",
			func(c *Config) { c.AdminAPIKey = c.APIKey },
			[]string{"ADMIN_API_KEY equals API_KEY, every API client can change win rates"},
		},
		{
			"example secrets",
			func(c *Config) {
				c.APIKey = exampleAPIKey
				c.DBPassword = exampleDBPassword
			},
			[]string{
				"API_KEY is the example value, generate one with: openssl rand -hex 32",
				"DB_PASSWORD is the example value",
			},
		},
		{
			"missing postgres settings are sorted",
			func(c *Config) {
				c.DBUser = ""
				c.DBHost = ""
			},
			[]string{"postgres connection settings unset: DB_HOST, DB_USER"},
		},
		{
			"sqlite ignores postgres settings",
			func(c *Config) {
				c.DBDriver = DriverSQLite
				c.DBHost = ""
			},
			nil,
		},
		{
			"sqlite in prod",
			func(c *Config) {
				c.DBDriver = DriverSQLite
				c.Environment = "prod"
			},
			[]string{"DB_DRIVER=sqlite in prod, balances live in a single local file"},
		},
		{
			"governor raises odds",
			func(c *Config) { c.Casino.GovernedProbability = 0.9 },
			[]string{"CASINO_GOVERNED_PROBABILITY exceeds the fallback probability, the governor raises odds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := healthyConfig()
			tt.modify(cfg)
			assert.Equal(t, tt.want, cfg.Warnings())
		})
	}
}

func TestWarnings_LowProfitRatio(t *testing.T) {
	cfg := healthyConfig()
	cfg.Casino.MaxProfitRatio = 0.5

	warnings := cfg.Warnings()

	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "CASINO_MAX_PROFIT_RATIO=0.5")
}
