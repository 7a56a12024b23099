package solrtest

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// exemptSuffixes are routes that bypass authentication.
var exemptSuffixes = []string{"/admin/ping"}

// basicAuth returns a middleware that validates HTTP basic credentials.
// If user is empty, authentication is disabled (pass-through).
func basicAuth(user, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if user == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, suffix := range exemptSuffixes {
				if strings.HasSuffix(r.URL.Path, suffix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			u, p, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="solr"`)
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				subtle.ConstantTimeCompare([]byte(p), []byte(password)) != 1 {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
