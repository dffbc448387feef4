// Package http exposes the JSON API. Handlers stay thin: decode, call a
// service, map the error taxonomy to a status code.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finbook/internal/cache"
	"finbook/internal/core"
	"finbook/internal/middleware/ratelimit"
	"finbook/internal/middleware/security"
	"finbook/internal/middleware/trace"
)

type Server struct {
	http.Server

	ledger   LedgerAPI
	entities EntityAPI
	notifier NotifierAPI

	ready func(ctx context.Context) error

	limiter      *ratelimit.Limiter
	dashCache    *cache.LRUCache[core.DashboardSummary]
	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware and returns a ready-to-run server.
// ready is consulted by /readyz; nil means always ready.
func NewServer(addr string, ledger LedgerAPI, entities EntityAPI, notifier NotifierAPI, ready func(ctx context.Context) error) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:       ledger,
		entities:     entities,
		notifier:     notifier,
		ready:        ready,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		dashCache:    cache.NewLRUCache[core.DashboardSummary](100, 30*time.Second),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.dashCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /scheduled-transactions", s.handleCreateScheduled)
	mux.HandleFunc("GET /scheduled-transactions", s.handleListScheduled)
	mux.HandleFunc("GET /scheduled-transactions/{id}", s.handleGetScheduled)
	mux.HandleFunc("PUT /scheduled-transactions/{id}", s.handleScheduledAction)
	mux.HandleFunc("DELETE /scheduled-transactions/{id}", s.handleDeleteScheduled)

	mux.HandleFunc("POST /accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /accounts", s.handleListAccounts)
	mux.HandleFunc("GET /accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("PUT /accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /accounts/{id}", s.handleDeleteAccount)
	mux.HandleFunc("PUT /accounts/{id}/balance", s.handleCorrectBalance)

	mux.HandleFunc("POST /bills", s.handleCreateBill)
	mux.HandleFunc("GET /bills", s.handleListBills)
	mux.HandleFunc("GET /bills/{id}", s.handleGetBill)
	mux.HandleFunc("PUT /bills/{id}", s.handleUpdateBill)
	mux.HandleFunc("DELETE /bills/{id}", s.handleDeleteBill)
	mux.HandleFunc("PUT /bills/{id}/pay", s.handlePayBill)

	mux.HandleFunc("POST /goals", s.handleCreateGoal)
	mux.HandleFunc("GET /goals", s.handleListGoals)
	mux.HandleFunc("GET /goals/{id}", s.handleGetGoal)
	mux.HandleFunc("PUT /goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /notifications", s.handleListNotifications)
	mux.HandleFunc("PUT /notifications/{id}/read", s.handleMarkNotificationRead)
	mux.HandleFunc("POST /notifications/generate", s.handleGenerateNotifications)
	mux.HandleFunc("POST /notifications/cleanup", s.handleCleanupNotifications)

	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	detector := security.NewDetector()

	var handler http.Handler = mux
	handler = withIdentity(handler)
	handler = s.limiter.Middleware(detector.ExtractClientIP, nil)(handler)
	handler = withSuspicionLog(detector)(handler)
	handler = security.NewHeadersMiddleware(security.APIHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(detector.ExtractClientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// withSuspicionLog flags probing requests. They still get handled; the mux
// 404s them anyway, this just makes the probe visible.
func withSuspicionLog(d *security.Detector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d.IsSuspicious(r) {
				slog.WarnContext(r.Context(), "Suspicious request",
					"method", r.Method,
					"path", r.URL.Path,
					"client_ip", d.ExtractClientIP(r))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Shutdown stops the HTTP server and background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "Readiness check failed", "error", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
