package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, statusResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body statusResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h := NewHandler(prometheus.NewRegistry(), nil, nil)
	rec, body := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body.Status)
	assert.NotEmpty(t, body.Time)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		check  ReadinessCheck
		code   int
		status string
	}{
		{"no check", nil, http.StatusOK, "ready"},
		{"broker up", func(context.Context) error { return nil }, http.StatusOK, "ready"},
		{"broker down", func(context.Context) error { return errors.New("zeebe health check failed") }, http.StatusServiceUnavailable, "not ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(prometheus.NewRegistry(), tt.check, func() []string { return []string{"rank-crops"} })
			rec, body := get(t, h, "/ready")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, []string{"rank-crops"}, body.Workers)
		})
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_counter_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	rec, _ := get(t, NewHandler(reg, nil, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_counter_total 1")
}
