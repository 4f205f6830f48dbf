package constants

import "time"

const (
	UsernameMaxLength = 32
	PasswordMaxLength = 72
	HeadlineMaxLength = 280
	SessionIDSize     = 32

	ArticleTitleMaxLength = 200
	DefaultMaxRequestSize = 1 << 20

	DefaultHTTPPort               = "3000"
	DefaultSessionTTL             = time.Hour
	DefaultSessionCookieName      = "sid"
	DefaultSessionCleanupInterval = 10 * time.Minute
	DefaultRequestTimeout         = 5 * time.Second
	DefaultBcryptCost             = 12

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 5 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerWriteMargin       = 5 * time.Second
	ServerMaxHeaderBytes    = 64 << 10

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	RateLimitCleanupInterval           = 5 * time.Minute
	RateLimitLoginRequestsPerSecond    = 1.0
	RateLimitLoginBurst                = 10
	RateLimitRegisterRequestsPerSecond = 0.5
	RateLimitRegisterBurst             = 5
	RateLimitGeneralRequestsPerSecond  = 50.0
	RateLimitGeneralBurst              = 100

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
