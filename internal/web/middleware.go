package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"partsite/internal/logging"
)

type contextKey int

const headRequestKey contextKey = iota

// headToGet lets routes registered with Get answer HEAD requests; net/http
// drops the body. The original method stays visible through isHeadRequest.
func headToGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			r = r.WithContext(context.WithValue(r.Context(), headRequestKey, true))
			r.Method = http.MethodGet
		}
		next.ServeHTTP(w, r)
	})
}

func isHeadRequest(r *http.Request) bool {
	head, _ := r.Context().Value(headRequestKey).(bool)
	return head
}

// noCache disables browser caching for every response.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request",
				logging.String("method", r.Method),
				logging.String(logging.FieldPath, r.URL.Path),
				logging.Int("status", rec.status),
				logging.Duration("duration", time.Since(start)),
			)
		})
	}
}
