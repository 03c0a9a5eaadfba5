package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/metrics"
)

const unmatchedRoute = "unmatched"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Instrument counts and times requests by route pattern and writes one access log line
// per request. It must wrap the ServeMux directly so the matched pattern is visible once
// the request has been served.
func Instrument(m interfaces.Metrics, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.IncGauge(metrics.HTTPRequestsInFlight)
			defer m.DecGauge(metrics.HTTPRequestsInFlight)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := routeLabel(r)
			elapsed := time.Since(start)
			m.IncCounterVec(metrics.HTTPRequestsTotal, route, r.Method, strconv.Itoa(rec.status))
			m.ObserveHistogramVec(metrics.HTTPRequestDuration, elapsed.Seconds(), route, r.Method)

			log := LoggerFromContext(r.Context(), logger)
			keyvals := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"latency", elapsed.String(),
			}
			if rec.status >= http.StatusBadRequest {
				log.Warn("request served", keyvals...)
				return
			}
			log.Info("request served", keyvals...)
		})
	}
}

func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}
