package http

import (
	"net/http"

	"github.com/mbickford/accounts-service/internal/common/logger"
)

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
			return
		}
		log.Debug("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
