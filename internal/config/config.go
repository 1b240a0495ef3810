package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // required on every API route
	AdminAPIKey string // additionally required on admin routes; empty disables them
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string

	TrustedProxies []string
	RateLimit      int    // requests per IP per 5 minutes
	CatalogPath    string // empty uses the embedded catalog

	DBDriver          string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	SQLitePath        string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	RedisAddr           string // empty disables the stream bridge
	RedisStream         string
	InstanceID          string
	EventDeadletterPath string

	Casino CasinoConfig
}

// CasinoConfig holds game economy settings
type CasinoConfig struct {
	FallbackProbability   float64
	GovernedProbability   float64
	MaxProfitRatio        float64
	MaxPayoutAbsolute     float64 // zero disables the absolute cap
	MinesInstantLossShare float64
	MinBet                decimal.Decimal
	MaxBet                decimal.Decimal // zero means no upper limit
	StartingCredits       decimal.Decimal
	SettingsTimeout       time.Duration
	LedgerTimeout         time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		RateLimit:      getEnvAsInt("RATE_LIMIT", DefaultRateLimit),
		CatalogPath:    getEnv("CATALOG_PATH", ""),

		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "casino"),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisStream:         getEnv("REDIS_STREAM", DefaultRedisStream),
		InstanceID:          getEnv("INSTANCE_ID", hostname()),
		EventDeadletterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadletterPath),

		Casino: CasinoConfig{
			FallbackProbability:   getEnvAsFloat("CASINO_FALLBACK_PROBABILITY", DefaultFallbackProbability),
			GovernedProbability:   getEnvAsFloat("CASINO_GOVERNED_PROBABILITY", DefaultGovernedProbability),
			MaxProfitRatio:        getEnvAsFloat("CASINO_MAX_PROFIT_RATIO", DefaultMaxProfitRatio),
			MaxPayoutAbsolute:     getEnvAsFloat("CASINO_MAX_PAYOUT_ABSOLUTE", 0),
			MinesInstantLossShare: getEnvAsFloat("CASINO_MINES_INSTANT_LOSS_SHARE", DefaultMinesInstantLossShare),
			SettingsTimeout:       getEnvAsDuration("CASINO_SETTINGS_TIMEOUT", DefaultSettingsTimeout),
			LedgerTimeout:         getEnvAsDuration("CASINO_LEDGER_TIMEOUT", DefaultLedgerTimeout),
		},
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%s: %d out of range", ErrMsgInvalidPort, port)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf(ErrMsgAPIKeyRequired)
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("%s, got %q", ErrMsgUnsupportedDriver, cfg.DBDriver)
	}

	if err := cfg.Casino.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CasinoConfig) load() error {
	var err error
	if c.MinBet, err = getEnvAsDecimal("CASINO_MIN_BET", DefaultMinBet); err != nil {
		return err
	}
	if c.MaxBet, err = getEnvAsDecimal("CASINO_MAX_BET", "0"); err != nil {
		return err
	}
	if c.StartingCredits, err = getEnvAsDecimal("CASINO_STARTING_CREDITS", DefaultStartingCredits); err != nil {
		return err
	}
	if !c.MaxBet.IsZero() && c.MaxBet.LessThan(c.MinBet) {
		return fmt.Errorf("%s", ErrMsgBetRange)
	}

	probs := map[string]float64{
		"CASINO_FALLBACK_PROBABILITY":     c.FallbackProbability,
		"CASINO_GOVERNED_PROBABILITY":     c.GovernedProbability,
		"CASINO_MINES_INSTANT_LOSS_SHARE": c.MinesInstantLossShare,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s %s, got %v", name, ErrMsgInvalidProbability, p)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the variable as an int, or defaultValue when unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsFloat returns the variable as a float64, or defaultValue when unset or unparsable
func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration returns the variable as a time.Duration, or defaultValue when unset or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDecimal parses a money amount. Unlike the other helpers a malformed value is
// an error, since silently using a default stake limit would be surprising.
func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %s: %w", key, ErrMsgInvalidAmount, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s %s, got %s", key, ErrMsgInvalidAmount, d)
	}
	return d, nil
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "casino"
	}
	return h
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
