// Package http exposes the trip state over a small JSON API the view
// collaborates with.
package http

import (
	"net/http"
	"time"

	"tripsplit/internal/middleware/trace"
	"tripsplit/internal/services"
	"tripsplit/internal/store"
)

// Server serves the trip API. It embeds http.Server so callers drive it with
// ListenAndServe and Shutdown directly.
type Server struct {
	http.Server

	store     *store.Store
	shares    *services.ShareService
	transfers *services.TransferService
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, st *store.Store, shares *services.ShareService, transfers *services.TransferService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		store:     st,
		shares:    shares,
		transfers: transfers,
	}

	mux.HandleFunc("/health", handleHealth)

	mux.HandleFunc("/api/trip", s.withSecurityHeaders(s.handleTrip))
	mux.HandleFunc("/api/trip/info", s.withSecurityHeaders(s.handleAddTripInfo))
	mux.HandleFunc("/api/trip/info/update", s.withSecurityHeaders(s.handleUpdateTripInfo))
	mux.HandleFunc("/api/trip/info/delete", s.withSecurityHeaders(s.handleDeleteTripInfo))

	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.handleAddExpense))
	mux.HandleFunc("/api/expenses/update", s.withSecurityHeaders(s.handleUpdateExpense))
	mux.HandleFunc("/api/expenses/delete", s.withSecurityHeaders(s.handleDeleteExpense))
	mux.HandleFunc("/api/expenses/info", s.withSecurityHeaders(s.handleAddExpenseInfo))
	mux.HandleFunc("/api/expenses/info/update", s.withSecurityHeaders(s.handleUpdateExpenseInfo))
	mux.HandleFunc("/api/expenses/info/delete", s.withSecurityHeaders(s.handleDeleteExpenseInfo))

	mux.HandleFunc("/api/summary/text", s.withSecurityHeaders(s.handleSummaryText))
	mux.HandleFunc("/api/export", s.withSecurityHeaders(s.handleExport))
	mux.HandleFunc("/api/import", s.withSecurityHeaders(s.handleImport))
	mux.HandleFunc("/api/export/image", s.withSecurityHeaders(s.handleExportImage))

	tracer := trace.NewMiddleware(extractClientIP)
	s.Handler = tracer.Wrap(mux)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
