package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hupe1980/widgetstore/internal/resource"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := slog.LevelDebug
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) admit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		release, err := s.admission.Admit()
		if err != nil {
			switch {
			case errors.Is(err, resource.ErrRateLimited):
				s.onRejected("rate")
				w.Header().Set("Retry-After", "1")
				s.writeError(w, http.StatusTooManyRequests, err)
			default:
				s.onRejected("overload")
				s.writeError(w, http.StatusServiceUnavailable, err)
			}
			return
		}
		defer release()

		next.ServeHTTP(w, r)
	})
}
