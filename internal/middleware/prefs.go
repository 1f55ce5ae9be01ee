package middleware

import (
	"net/http"

	"github.com/diewo77/techfix/internal/i18n"
)

const langCookie = "lang"

// Prefs resolves the visitor's language (query > cookie > Accept-Language)
// and stores it in the request context. A query-provided language is
// persisted in a cookie for ~30 days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie(langCookie); err == nil {
			lang, _ = i18n.Normalize(c.Value)
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			if l, ok := i18n.Normalize(q); ok {
				lang = l
				http.SetCookie(w, &http.Cookie{Name: langCookie, Value: lang, Path: "/", MaxAge: 86400 * 30, SameSite: http.SameSiteLaxMode})
			}
		}
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// LangFrom returns the language chosen by Prefs.
func LangFrom(r *http.Request) string {
	return i18n.LangFromContext(r.Context())
}
