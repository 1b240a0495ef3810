package user

import "time"

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "2.0"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Query limits
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Username rules
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

// Log messages
const (
	LogMsgUserRegistered = "User registered"
	LogMsgPublishFailed  = "Failed to publish event"
)
