// Package metrics names the collectors the library service exports and registers them.
package metrics

import "github.com/haguru/elibrary/internal/interfaces"

var RequestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

const (
	HTTPRequestsTotal          = "http_requests_total"
	HTTPRequestsTotalHelp      = "Total number of HTTP requests by route, method and status"
	HTTPRequestDuration        = "http_request_duration_seconds"
	HTTPRequestDurationHelp    = "Duration of HTTP requests in seconds"
	HTTPRequestsInFlight       = "http_requests_in_flight"
	HTTPRequestsInFlightHelp   = "Number of HTTP requests currently being served"
	RateLimitedTotal           = "rate_limited_requests_total"
	RateLimitedTotalHelp       = "Total number of requests rejected by the rate limiter"
	SignupsTotal               = "user_signups_total"
	SignupsTotalHelp           = "Total number of registration attempts by result"
	LoginsTotal                = "user_logins_total"
	LoginsTotalHelp            = "Total number of login attempts by result"
	PersistenceErrorsTotal     = "persistence_errors_total"
	PersistenceErrorsTotalHelp = "Total number of classified storage failures by entity and kind"

	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Register creates every collector on m.
func Register(m interfaces.Metrics) error {
	if err := m.RegisterCounterVec(HTTPRequestsTotal, HTTPRequestsTotalHelp, []string{"route", "method", "status"}); err != nil {
		return err
	}
	if err := m.RegisterHistogramVec(HTTPRequestDuration, HTTPRequestDurationHelp, RequestDurationBuckets, []string{"route", "method"}); err != nil {
		return err
	}
	if err := m.RegisterGauge(HTTPRequestsInFlight, HTTPRequestsInFlightHelp); err != nil {
		return err
	}
	if err := m.RegisterCounterVec(RateLimitedTotal, RateLimitedTotalHelp, []string{"route"}); err != nil {
		return err
	}
	if err := m.RegisterCounterVec(SignupsTotal, SignupsTotalHelp, []string{"result"}); err != nil {
		return err
	}
	if err := m.RegisterCounterVec(LoginsTotal, LoginsTotalHelp, []string{"result"}); err != nil {
		return err
	}
	return m.RegisterCounterVec(PersistenceErrorsTotal, PersistenceErrorsTotalHelp, []string{"entity", "kind"})
}
