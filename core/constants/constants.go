package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyOAuthState = "oauth:state:"
	RedisKeyQueryCache = "query:"
	RedisKeyWeather    = "weather:"
)

// Cache TTLs
const (
	QueryCacheTTL   = 30 * time.Second
	OAuthStateTTL   = 10 * time.Minute
	WeatherCacheTTL = 30 * time.Minute
)

// Event rules
const (
	MinParticipantThreshold = 2
	MaxCommentLength        = 100
	URLHashLength           = 7
	ResponseTokenLength     = 24
	// ConcludedGrace is how long after an event's end (or start, when no
	// end is set) the derived status stays "active".
	ConcludedGrace = time.Hour
)

// External call budgets
const (
	WeatherTimeout      = 2 * time.Second
	WeatherMaxRetries   = 2
	WeatherBackoffBase  = 200 * time.Millisecond
	WeatherBackoffCap   = time.Second
	EmailSendTimeout    = 10 * time.Second
)

// Asynq task types
const (
	TaskEventConfirmed = "event:confirmed"
)
