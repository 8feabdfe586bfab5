package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const callerIDKey contextKey = "caller_id"

// CallerIdentity reads the authenticated caller id from the X-User-ID header
// and stores it on the request context. Authentication itself happens
// upstream (gateway or session layer); this service only trusts the header it
// is handed.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-User-ID"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), callerIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID returns the authenticated caller id from the context.
func CallerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(callerIDKey).(string)
	return id, ok && id != ""
}
