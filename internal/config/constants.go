package config

import "time"

// Database drivers accepted in DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults applied when a variable is unset
const (
	DefaultPort                  = 8080
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultLogDir                = "logs"
	DefaultEnvironment           = "dev"
	DefaultSQLitePath            = "data/casino.db"
	DefaultDBMaxConns            = 20
	DefaultDBMaxConnIdleTime     = 5 * time.Minute
	DefaultDBMaxConnLifetime     = 30 * time.Minute
	DefaultRedisStream           = "casino:events"
	DefaultEventDeadletterPath   = "logs/event_deadletter.jsonl"
	DefaultFallbackProbability   = 0.15
	DefaultGovernedProbability   = 0.05
	DefaultMaxProfitRatio        = 10.0
	DefaultMinesInstantLossShare = 0.30
	DefaultMinBet                = "1"
	DefaultStartingCredits       = "1000"
	DefaultSettingsTimeout       = 500 * time.Millisecond
	DefaultLedgerTimeout         = 3 * time.Second
	DefaultRateLimit             = 1000
)

// Error messages
const (
	ErrMsgInvalidPort        = "invalid PORT value"
	ErrMsgAPIKeyRequired     = "API_KEY environment variable must be set for security"
	ErrMsgUnsupportedDriver  = "DB_DRIVER must be postgres or sqlite"
	ErrMsgInvalidProbability = "must be a probability between 0 and 1"
	ErrMsgInvalidAmount      = "must be a decimal amount"
	ErrMsgBetRange           = "CASINO_MAX_BET must be zero or at least CASINO_MIN_BET"
)
