package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/services"
)

// Options tunes a Server. Zero values select defaults.
type Options struct {
	RateLimitPerMinute int
	Logger             *log.Logger
	Now                func() time.Time
}

// Server is the JSON API over the expense service and the dashboard.
type Server struct {
	http.Server
	expenses  *services.ExpenseService
	dashboard *services.Dashboard
	logger    *log.Logger
	now       func() time.Time
	started   time.Time

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	ready       atomic.Bool

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. Readiness stays false until SetReady is called.
func NewServer(addr string, expenses *services.ExpenseService, dashboard *services.Dashboard, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		expenses:  expenses,
		dashboard: dashboard,
		logger:    opts.Logger.WithComponent(log.ComponentHTTP),
		now:       opts.Now,
		started:   opts.Now(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		detector: security.NewDetector(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/currencies", s.handleCurrencies)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/summary/categories", s.handleSummaryCategories)
	mux.HandleFunc("GET /api/summary/monthly", s.handleSummaryMonthly)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PATCH /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("POST /api/settings/reset", s.handleResetSettings)

	limited := s.rateLimiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited,
		http.MethodPost, http.MethodPatch, http.MethodDelete)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.requireReady(handler)
	handler = limited(handler)
	handler = headers.Middleware(handler)
	handler = s.detector.Middleware(handler)
	handler = log.Middleware(opts.Logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// requireReady rejects mutations with 503 until SetReady(true). The sample
// seed replaces the whole store and must not overwrite client writes.
func (s *Server) requireReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || s.ready.Load() {
			next.ServeHTTP(w, r)
			return
		}
		log.FromContext(r.Context()).DebugContext(r.Context(), "Mutation rejected before ready",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		ErrorResponse(http.StatusServiceUnavailable, "Service is starting, try again shortly").
			Header("Retry-After", "1").
			Write(w)
	})
}

// SetReady marks the server as ready to serve traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) today() core.Date {
	return core.DateOf(s.now())
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	TooManyRequestsError().Write(w)
}
