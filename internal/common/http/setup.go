package http

import (
	"net/http"

	"github.com/mbickford/accounts-service/internal/common/constants"
	"github.com/mbickford/accounts-service/internal/common/httpmetrics"
	"github.com/mbickford/accounts-service/internal/common/logger"
)

// BuildBaseHandler wraps handler with the service-wide middleware stack:
// security headers, panic recovery, trace ids, request size cap and
// Prometheus request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
