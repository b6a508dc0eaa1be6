package middleware

import (
	"net/http"
	"time"

	"userhub/backend/internal/logging"
)

// Logging writes one structured line per request once it completes.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logging.WithRequest(GetRequestID(r.Context()), r.Method, routePattern(r)).Infow("HTTP request completed",
			"path", r.URL.Path,
			"status_code", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
