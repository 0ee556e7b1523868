// Package api implements the Fretwork REST API using chi.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// tokenParam carries the token for clients that cannot set headers, such
// as a browser EventSource. Only GET requests may use it.
const tokenParam = "access_token"

// AuthMiddleware returns middleware that validates a Bearer token.
// When enabled is false every request passes through.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			got, ok := requestToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestToken(r *http.Request) (string, bool) {
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return tok, true
	}
	if r.Method == http.MethodGet {
		if tok := r.URL.Query().Get(tokenParam); tok != "" {
			return tok, true
		}
	}
	return "", false
}
