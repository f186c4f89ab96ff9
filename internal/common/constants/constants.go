package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 32
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	BcryptCost = 12

	AccessTokenCookieName = "jwtdown_access_token"

	DefaultMaxRequestSize = 1 << 20

	RateLimitRequestsPerSecond = 10.0
	RateLimitBurst             = 20
	RateLimitCleanupInterval   = 5 * time.Minute

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL = 30 * time.Minute
)
