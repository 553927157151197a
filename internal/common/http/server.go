// Package http serves the health, readiness and metrics endpoints of the
// worker manager.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"crop-planner/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether the service can take work.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

type statusResponse struct {
	Status  string   `json:"status"`
	Time    string   `json:"time"`
	Error   string   `json:"error,omitempty"`
	Workers []string `json:"workers,omitempty"`
}

// NewHandler builds the endpoint mux. workers, when set, lists the running
// task types on /ready.
func NewHandler(gatherer prometheus.Gatherer, ready ReadinessCheck, workers func() []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, statusResponse{Status: "healthy"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		resp := statusResponse{Status: "ready"}
		if workers != nil {
			resp.Workers = workers()
		}
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				resp.Status = "not ready"
				resp.Error = err.Error()
				writeStatus(w, http.StatusServiceUnavailable, resp)
				return
			}
		}
		writeStatus(w, http.StatusOK, resp)
	})

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func writeStatus(w http.ResponseWriter, code int, resp statusResponse) {
	resp.Time = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

func NewServer(addr string, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("health/metrics server listening", map[string]interface{}{"address": s.srv.Addr})
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
