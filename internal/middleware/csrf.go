package middleware

import (
	"net/http"

	"github.com/diewo77/techfix/internal/i18n"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// CSRF protects state-changing requests with gorilla/csrf. When secure is
// false requests are marked plaintext so the Referer check for HTTPS is
// skipped. A nil key disables protection.
func CSRF(key []byte, secure bool, log *zap.Logger) func(http.Handler) http.Handler {
	if len(key) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("csrf rejected", zap.String("path", r.URL.Path), zap.Error(csrf.FailureReason(r)))
			http.Error(w, i18n.T(LangFrom(r), "error.csrf"), http.StatusForbidden)
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
