package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mbickford/accounts-service/internal/accounts/domain"
	"github.com/mbickford/accounts-service/internal/accounts/service"
	"github.com/mbickford/accounts-service/internal/common/constants"
	commonhttp "github.com/mbickford/accounts-service/internal/common/http"
	"github.com/mbickford/accounts-service/internal/common/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// tokenSource extracts a candidate token from a request. Sources are
// consulted in order and the first PRESENT token wins: a bearer header that
// fails verification is never replaced by a valid cookie token.
type tokenSource func(r *http.Request) (string, bool)

func bearerTokenSource(r *http.Request) (string, bool) {
	raw := r.Header.Get("Authorization")
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(raw, "Bearer "), true
}

func cookieTokenSource(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(constants.AccessTokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

var tokenSources = []tokenSource{bearerTokenSource, cookieTokenSource}

func selectToken(r *http.Request) (string, bool) {
	for _, source := range tokenSources {
		if tok, ok := source(r); ok {
			return tok, true
		}
	}
	return "", false
}

// RequireIdentity resolves an authenticated user from the bearer header or
// the access cookie and stores it in the request context. Every failure is
// the same opaque 401.
func RequireIdentity(auth *service.AuthService, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := selectToken(r)
			if !ok {
				log.Warnf("identity resolution failed path=%s: no token", r.URL.Path)
				writeUnauthenticated(w)
				return
			}

			user, err := auth.ResolveIdentity(r.Context(), tok)
			if err != nil {
				log.Warnf("identity resolution failed path=%s: %v", r.URL.Path, err)
				writeUnauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(identityKey).(domain.User)
	return user, ok
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "invalid authentication credentials")
}
