package rest

import (
	"net/http"

	"github.com/heartmarshall/library-backend/internal/transport/middleware"
)

// RouterDeps are the handlers and per-route middleware mounted by NewRouter.
type RouterDeps struct {
	Circulation *CirculationHandler
	Reports     *ReportsHandler
	Health      *HealthHandler
	Metrics     http.Handler

	// Auth guards every /api/v1 route. WriteLimit additionally guards
	// the lend and return routes and runs after Auth.
	Auth       middleware.Middleware
	WriteLimit middleware.Middleware
}

// NewRouter mounts the API on a ServeMux.
func NewRouter(d RouterDeps) *http.ServeMux {
	auth := orPassThrough(d.Auth)
	write := middleware.Chain(auth, orPassThrough(d.WriteLimit))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	mux.Handle("POST /api/v1/lends", write(http.HandlerFunc(d.Circulation.Lend)))
	mux.Handle("POST /api/v1/returns", write(http.HandlerFunc(d.Circulation.Return)))
	mux.Handle("GET /api/v1/lends/{id}", auth(http.HandlerFunc(d.Circulation.Detail)))

	mux.Handle("GET /api/v1/reports/overdue", auth(http.HandlerFunc(d.Reports.Overdue)))
	mux.Handle("GET /api/v1/reports/trend", auth(http.HandlerFunc(d.Reports.Trend)))
	mux.Handle("GET /api/v1/reports/rollup", auth(http.HandlerFunc(d.Reports.Rollup)))
	mux.Handle("GET /api/v1/reports/valuation", auth(http.HandlerFunc(d.Reports.Valuation)))
	mux.Handle("GET /api/v1/reports/dashboard", auth(http.HandlerFunc(d.Reports.Dashboard)))

	return mux
}

func orPassThrough(mw middleware.Middleware) middleware.Middleware {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
