package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stress-advisor/observability"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Stress   *StressHandler
	Scenario *ScenarioHandler
	Explain  *ExplainHandler
}

// NewRouter wires the API routes. Scoring and explanation routes are rate
// limited; health and metrics are not.
func NewRouter(
	h Handlers,
	limiter *RateLimiter,
	metrics *observability.Metrics,
	log logrus.FieldLogger,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(log, metrics))

	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	r.Handle("/stress", limited(h.Stress.CalculateStress)).Methods(http.MethodPost)
	r.Handle("/summary", limited(h.Stress.CalculateStress)).Methods(http.MethodPost)
	r.Handle("/simulate", limited(h.Scenario.Simulate)).Methods(http.MethodPost)
	r.Handle("/explain", limited(h.Explain.Explain)).Methods(http.MethodPost)

	return r
}
