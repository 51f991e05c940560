package middleware

import (
	"net/http"
	"strings"

	"dermascan/internal/session"
)

// AuthMiddleware requires a signed-in session for everything except the
// login/registration endpoints and static assets.
func AuthMiddleware(sessions *session.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if r.URL.Path == "/login" ||
			r.URL.Path == "/register" ||
			r.URL.Path == "/auth/login" ||
			r.URL.Path == "/auth/register" ||
			strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		if _, _, ok := sessions.Current(r); !ok {
			// API and AJAX clients get a 401, browsers a redirect
			if strings.HasPrefix(r.URL.Path, "/api/") ||
				r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
