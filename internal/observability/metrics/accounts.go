package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_requests_total",
			Help: "Total number of accounts requests",
		},
		[]string{"method", "path"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "accounts_requests_in_flight",
			Help: "Number of accounts requests currently being processed",
		},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounts_request_duration_seconds",
			Help:    "Duration of accounts requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts",
		},
	)

	LoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of signup attempts",
		},
	)

	SignupConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_conflicts_total",
			Help: "Total number of signups rejected for duplicate usernames",
		},
	)

	AccessTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "access_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	TokenValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_total",
			Help: "Total number of standalone token validations",
		},
	)

	TokenValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_failed_total",
			Help: "Total number of failed standalone token validations",
		},
	)

	IdentityResolutionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_resolutions_total",
			Help: "Total number of identity resolutions on protected routes",
		},
	)

	IdentityResolutionsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_resolutions_failed_total",
			Help: "Total number of failed identity resolutions",
		},
	)

	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocked_total",
			Help: "Total number of requests blocked by rate limiting",
		},
		[]string{"path"},
	)
)
