// Package api provides the HTTP surface of the chart gateway: the
// WebSocket upgrade, health, discovery endpoints and the static
// snapshot view.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"chartview/internal/gateway"
	"chartview/internal/metrics"
	"chartview/internal/model"
	"chartview/internal/snapshot"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

// TFInfo is the REST response type for /api/v1/timeframes.
type TFInfo struct {
	Seconds int    `json:"seconds"`
	Label   string `json:"label"`
}

// NewRouter sets up HTTP routes for the chart gateway.
func NewRouter(ctx context.Context, hub *gateway.Hub, m *metrics.Metrics, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "ok",
			"sessions": hub.ClientCount(),
		})
	})

	mux.HandleFunc("/api/v1/timeframes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		tfs := hub.Timeframes()
		out := make([]TFInfo, len(tfs))
		for i, tf := range tfs {
			out[i] = TFInfo{Seconds: int(tf.Seconds()), Label: tf.Label()}
		}
		json.NewEncoder(w).Encode(out)
	})

	// Static snapshot view: one auto-fitted frame, no interaction.
	mux.HandleFunc("/api/v1/snapshot.png", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		symbol := q.Get("symbol")
		if symbol == "" {
			symbol = hub.DefaultSymbol
		}
		if symbol == "" {
			http.Error(w, `{"error":"symbol is required"}`, http.StatusBadRequest)
			return
		}
		tf, err := model.ParseTimeframe(q.Get("tf"))
		if err != nil {
			http.Error(w, `{"error":"invalid tf"}`, http.StatusBadRequest)
			return
		}
		limit := intQuery(q.Get("candles"), 500)

		series, err := hub.LoadSeries(symbol, tf, limit)
		if err != nil {
			logger.Warn("snapshot load failed", "symbol", symbol, "err", err)
			http.Error(w, `{"error":"series load failed"}`, http.StatusInternalServerError)
			return
		}

		opts := snapshot.Options{
			Width:  float64(intQuery(q.Get("w"), 960)),
			Height: float64(intQuery(q.Get("h"), 540)),
			DPR:    1,
		}
		if p, ok := hub.LatestPrice(r.Context(), symbol); ok {
			opts.Price, opts.HasPrice = p, true
		}

		png, err := snapshot.Render(series, opts)
		if err != nil {
			logger.Error("snapshot render failed", "symbol", symbol, "err", err)
			http.Error(w, `{"error":"render failed"}`, http.StatusInternalServerError)
			return
		}
		m.SnapshotsTotal.Inc()

		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "err", err)
			return
		}
		hub.HandleWS(ctx, conn)
	})

	return mux
}

func intQuery(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
