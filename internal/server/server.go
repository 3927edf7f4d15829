package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kalshiwhale/tracker/internal/config"
	"github.com/kalshiwhale/tracker/internal/feed"
	"github.com/kalshiwhale/tracker/internal/version"
)

// RefreshFunc runs one refresh cycle on demand and reports its outcome.
// The manual refresh endpoint invokes it synchronously.
type RefreshFunc func(ctx context.Context) error

// Server serves the dashboard API.
type Server struct {
	cfg       config.ServerConfig
	store     *feed.Store
	hub       *Hub
	alertsCfg feed.AlertsConfig
	refresh   RefreshFunc
	logger    *slog.Logger
	startedAt time.Time
	httpSrv   *http.Server
}

// New creates a Server. refresh may be nil, in which case the manual
// refresh endpoint reports that refresh is unavailable.
func New(cfg config.ServerConfig, store *feed.Store, hub *Hub, alertsCfg feed.AlertsConfig, refresh RefreshFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		store:     store,
		hub:       hub,
		alertsCfg: alertsCfg,
		refresh:   refresh,
		logger:    logger,
		startedAt: time.Now().UTC(),
	}

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/markets", s.handleMarkets)
	mux.HandleFunc("GET /api/top-markets", s.handleTopMarkets)
	mux.HandleFunc("GET /api/markets/top5", s.handleTop5Detailed)
	mux.HandleFunc("GET /api/whale-alerts", s.handleWhaleAlerts)
	mux.HandleFunc("GET /api/whale-analytics", s.handleWhaleAnalytics)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /ws", s.hub.ServeWS)

	rl := newRateLimiter(s.cfg.RateLimitPerMinute, time.Minute)

	var h http.Handler = mux
	h = rateLimitMiddleware(rl, s.logger, h)
	h = corsMiddleware(s.cfg.AllowedOrigins, h)
	h = securityHeadersMiddleware(h)
	return h
}

// ListenAndServe serves until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.cfg.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}

// currentSnapshot resolves the empty-vs-error distinction for data routes.
// It writes the failure response itself and returns false when no snapshot
// can be served.
func (s *Server) currentSnapshot(w http.ResponseWriter) (snapOK bool) {
	snap, err := s.store.Current()
	switch {
	case snap != nil:
		return true
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "upstream data unavailable",
			"message": err.Error(),
		})
		return false
	default:
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "no data available",
			"message": "first refresh cycle has not completed yet",
		})
		return false
	}
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	if !s.currentSnapshot(w) {
		return
	}
	snap, _ := s.store.Current()
	writeJSON(w, http.StatusOK, feed.Markets(snap))
}

const topMarketsLimit = 5

func (s *Server) handleTopMarkets(w http.ResponseWriter, r *http.Request) {
	if !s.currentSnapshot(w) {
		return
	}
	snap, _ := s.store.Current()
	writeJSON(w, http.StatusOK, feed.TopMarkets(snap, topMarketsLimit))
}

func (s *Server) handleTop5Detailed(w http.ResponseWriter, r *http.Request) {
	if !s.currentSnapshot(w) {
		return
	}
	snap, _ := s.store.Current()
	writeJSON(w, http.StatusOK, feed.Top5Detailed(snap, s.alertsCfg.HighVolumeMinimum))
}

func (s *Server) handleWhaleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !s.currentSnapshot(w) {
		return
	}
	snap, _ := s.store.Current()
	writeJSON(w, http.StatusOK, feed.Analytics(snap, s.alertsCfg))
}

func (s *Server) handleWhaleAlerts(w http.ResponseWriter, r *http.Request) {
	if !s.currentSnapshot(w) {
		return
	}
	snap, _ := s.store.Current()
	writeJSON(w, http.StatusOK, feed.Alerts(snap, s.alertsCfg))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, lastErr := s.store.Current()

	status := "running"
	if lastErr != nil {
		status = "degraded"
	}

	resp := map[string]any{
		"status":             status,
		"version":            version.Version,
		"timestamp":          time.Now().UTC(),
		"uptime_seconds":     int(time.Since(s.startedAt).Seconds()),
		"active_connections": s.hub.ConnectionCount(),
		"websocket_enabled":  true,
		"total_markets":      0,
		"last_update":        nil,
	}
	if snap != nil {
		resp["total_markets"] = snap.Count
		resp["last_update"] = snap.Timestamp
	}
	if lastErr != nil {
		resp["last_error"] = lastErr.Error()
		resp["last_error_at"] = s.store.LastErrorAt()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresh == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]any{
			"success": false,
			"message": "manual refresh is not enabled",
		})
		return
	}

	if err := s.refresh(r.Context()); err != nil {
		s.logger.Error("manual refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	snap, _ := s.store.Current()
	resp := map[string]any{
		"success": true,
		"message": "data refreshed successfully",
	}
	if snap != nil {
		resp["count"] = snap.Count
		resp["timestamp"] = snap.Timestamp
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", "error", err)
	}
}
