package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	ServiceName = "brandish-casino"

	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is how many session logs survive a restart, the new one included
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingCasino      = "Starting BrandishCasino"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStoreReady        = "Store ready"
	ErrMsgFailedOpenStore   = "failed to open store"
	ErrMsgFailedMigrate     = "failed to apply migrations"
	ErrMsgFailedLoadCatalog = "failed to load game catalog"
	LogMsgCatalogLoaded     = "Game catalog loaded"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second

	BridgeWorkers   = 2
	BridgeQueueSize = 1024
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgSSESubscriberRegistered        = "SSE subscriber registered"
	LogMsgStreamBridgeStarted            = "Event stream bridge started"
	LogMsgStreamBridgeDisabled           = "REDIS_ADDR not set, events stay on this instance"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
	ErrMsgFailedConnectRedis             = "failed to connect to redis"
	ErrMsgFailedStartBridge              = "failed to start event stream bridge"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgCasinoShutdownFailed       = "Casino service shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)
