package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"housetab/internal/cache"
	"housetab/internal/core"
	"housetab/internal/middleware/ratelimit"
	"housetab/internal/middleware/security"
	"housetab/internal/middleware/trace"
	"housetab/internal/ports"
	"housetab/internal/services"
)

// Server is the JSON API for the household ledger. It owns the summary
// cache and invalidates it wholesale on any expense or budget mutation.
type Server struct {
	http.Server

	expenses *services.ExpenseService
	calendar *services.CalendarService
	threads  *services.ThreadService
	summary  *services.SummaryService

	categories ports.CategoryRegistry
	members    ports.MemberRegistry
	budget     ports.BudgetStore

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	summaryCache *cache.LRUCache[core.MonthlySummary]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Deps bundles everything the server needs. All fields are required.
type Deps struct {
	Expenses *services.ExpenseService
	Calendar *services.CalendarService
	Threads  *services.ThreadService
	Summary  *services.SummaryService

	Categories ports.CategoryRegistry
	Members    ports.MemberRegistry
	Budget     ports.BudgetStore
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	detector := security.NewDetector()

	s := &Server{
		expenses:   deps.Expenses,
		calendar:   deps.Calendar,
		threads:    deps.Threads,
		summary:    deps.Summary,
		categories: deps.Categories,
		members:    deps.Members,
		budget:     deps.Budget,

		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     detector,
		tracer:       trace.NewMiddleware(detector.ExtractClientIP),
		summaryCache: cache.NewLRUCache[core.MonthlySummary](100, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/summary", s.handleSummary)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("POST /api/calendar", s.handleCreateEntry)
	mux.HandleFunc("GET /api/calendar", s.handleListEntries)
	mux.HandleFunc("GET /api/calendar/grid", s.handleCalendarGrid)
	mux.HandleFunc("GET /api/calendar/{id}", s.handleGetEntry)
	mux.HandleFunc("PUT /api/calendar/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/calendar/{id}", s.handleDeleteEntry)

	// Comment threads hang off both parent kinds with the same shape.
	for prefix, kind := range map[string]core.ParentKind{
		"/api/expenses": core.ParentExpense,
		"/api/calendar": core.ParentEntry,
	} {
		k := kind
		mux.HandleFunc("GET "+prefix+"/{id}/comments", s.handleListComments(k))
		mux.HandleFunc("POST "+prefix+"/{id}/comments", s.handleAddComment(k))
		mux.HandleFunc("PUT "+prefix+"/{id}/comments/{commentID}", s.handleEditComment(k))
		mux.HandleFunc("DELETE "+prefix+"/{id}/comments/{commentID}", s.handleDeleteComment(k))
		mux.HandleFunc("POST "+prefix+"/{id}/comments/{commentID}/replies", s.handleAddReply(k))
	}

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("GET /api/members", s.handleListMembers)
	mux.HandleFunc("GET /api/settings/full-amount", s.handleGetFullAmount)
	mux.HandleFunc("PUT /api/settings/full-amount", s.handleSetFullAmount)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(headers.Middleware(s.withRateLimit(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// withRateLimit limits mutating requests per client IP. Reads stay
// unlimited; the group is small and views poll freely.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			next.ServeHTTP(w, r)
			return
		}

		clientIP := s.detector.ExtractClientIP(r)
		if !s.limiter.Allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
		}

		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Storage must answer before we accept traffic.
	if _, err := s.members.CountMembers(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) invalidateSummaries() {
	s.summaryCache.Clear()
}

func summaryCacheKey(month, year int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
