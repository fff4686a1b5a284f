// Package metrics exposes Prometheus metrics for the chart gateway.
package metrics

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the chart gateway.
type Metrics struct {
	FramesTotal    prometheus.Counter
	RenderDur      prometheus.Histogram
	EventsTotal    *prometheus.CounterVec // labels: kind
	RingOverflow   prometheus.Counter
	WSClients      prometheus.Gauge
	SQLiteReadDur  prometheus.Histogram
	SnapshotsTotal prometheus.Counter
	SeriesLoads    prometheus.Counter
	PriceUpdates   prometheus.Counter
}

// New registers and returns all chart gateway metrics.
func New() *Metrics {
	m := &Metrics{
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartgw_frames_rendered_total",
			Help: "Total chart frames rendered across all sessions",
		}),
		RenderDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartgw_render_duration_seconds",
			Help:    "Full-frame render latency",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartgw_input_events_total",
			Help: "Input events applied to chart engines (by kind)",
		}, []string{"kind"}),
		RingOverflow: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartgw_event_ring_overflow_total",
			Help: "Input events dropped because a session ring was full",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chartgw_ws_clients",
			Help: "Currently connected WebSocket chart sessions",
		}),
		SQLiteReadDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartgw_sqlite_read_duration_seconds",
			Help:    "Candle history read latency",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartgw_snapshot_requests_total",
			Help: "Static snapshot renders served",
		}),
		SeriesLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartgw_series_loads_total",
			Help: "Series loads (symbol/timeframe switches)",
		}),
		PriceUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartgw_price_updates_total",
			Help: "Current-price updates fanned out to sessions",
		}),
	}

	prometheus.MustRegister(
		m.FramesTotal,
		m.RenderDur,
		m.EventsTotal,
		m.RingOverflow,
		m.WSClients,
		m.SQLiteReadDur,
		m.SnapshotsTotal,
		m.SeriesLoads,
		m.PriceUpdates,
	)
	return m
}

// Server runs an HTTP server exposing /metrics.
type Server struct {
	srv *http.Server
}

// NewServer creates the metrics server.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		srv: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[metrics] server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}
