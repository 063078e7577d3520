package adminauth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware guards routes with a static API key passed as X-API-Key or a bearer token.
type Middleware struct {
	apiKey string
}

func New(apiKey string) *Middleware {
	return &Middleware{apiKey: strings.TrimSpace(apiKey)}
}

func (m *Middleware) checkKey(r *http.Request) bool {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return m.equal(k)
	}
	const pfx = "Bearer "
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); strings.HasPrefix(auth, pfx) {
		return m.equal(strings.TrimSpace(auth[len(pfx):]))
	}
	return false
}

func (m *Middleware) equal(k string) bool {
	return subtle.ConstantTimeCompare([]byte(k), []byte(m.apiKey)) == 1
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.apiKey == "" {
			writeError(w, http.StatusInternalServerError, "server not configured (ADMIN_API_KEY is empty)")
			return
		}
		if !m.checkKey(r) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
