package service

import (
	"github.com/mbickford/accounts-service/internal/observability/metrics"
)

func incrementLogins() {
	metrics.LoginsTotal.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementSignups() {
	metrics.SignupsTotal.Inc()
}

func incrementSignupConflicts() {
	metrics.SignupConflicts.Inc()
}

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}

func incrementTokenValidations() {
	metrics.TokenValidationsTotal.Inc()
}

func incrementTokenValidationsFailed() {
	metrics.TokenValidationsFailed.Inc()
}

func incrementIdentityResolutions() {
	metrics.IdentityResolutionsTotal.Inc()
}

func incrementIdentityResolutionsFailed() {
	metrics.IdentityResolutionsFailed.Inc()
}
