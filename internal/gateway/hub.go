// Package gateway hosts interactive chart sessions over WebSocket.
// Each connected client gets its own engine instance and raster
// surface: input events stream in, rendered frames stream out. Nothing
// is shared between sessions except the candle store and the
// current-price feed.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chartview/internal/marketdata/resample"
	"chartview/internal/metrics"
	"chartview/internal/model"
	redisstore "chartview/internal/store/redis"
	"chartview/internal/store/sqlite"
)

// Hub manages chart sessions and fans the current-price feed out to
// the sessions mounted on each symbol.
type Hub struct {
	store   *sqlite.Reader
	prices  *redisstore.PriceWatcher
	metrics *metrics.Metrics
	log     *slog.Logger

	tfs []model.Timeframe

	// Per-session surface defaults; clients resize afterwards.
	CanvasW, CanvasH float64
	DPR              float64

	// DefaultSymbol backs requests that name no symbol.
	DefaultSymbol string

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a hub over the given history store and price feed.
// prices may be nil when no feed is configured.
func NewHub(store *sqlite.Reader, prices *redisstore.PriceWatcher, m *metrics.Metrics, tfs []model.Timeframe, logger *slog.Logger) *Hub {
	return &Hub{
		store:   store,
		prices:  prices,
		metrics: m,
		log:     logger,
		tfs:     tfs,
		CanvasW: 960,
		CanvasH: 540,
		DPR:     1,
		clients: make(map[*Client]bool),
	}
}

// Timeframes returns the enabled timeframe buckets.
func (h *Hub) Timeframes() []model.Timeframe {
	return h.tfs
}

// LoadSeries reads history for a symbol, resamples it to tf and builds
// the immutable series a session mounts.
func (h *Hub) LoadSeries(symbol string, tf model.Timeframe, limit int) (*model.Series, error) {
	if !tf.Valid() {
		return nil, fmt.Errorf("invalid timeframe %d", tf)
	}
	enabled := false
	for _, t := range h.tfs {
		if t == tf {
			enabled = true
			break
		}
	}
	if !enabled {
		return nil, fmt.Errorf("timeframe %s not enabled", tf.Label())
	}

	// Read enough base rows to fill the requested candle count after
	// resampling from the 1-minute base resolution.
	baseLimit := 0
	if limit > 0 {
		baseLimit = limit * int(tf.Seconds()/model.TF1m.Seconds())
	}

	start := time.Now()
	candles, samples, err := h.store.ReadHistory(symbol, baseLimit)
	if err != nil {
		return nil, err
	}
	h.metrics.SQLiteReadDur.Observe(time.Since(start).Seconds())
	h.metrics.SeriesLoads.Inc()

	return resample.Series(symbol, tf, candles, samples), nil
}

// LatestPrice returns the last published price for a symbol, if any.
func (h *Hub) LatestPrice(ctx context.Context, symbol string) (float64, bool) {
	if h.prices == nil {
		return 0, false
	}
	p, ok, err := h.prices.Latest(ctx, symbol)
	if err != nil {
		h.log.Warn("latest price lookup failed", "symbol", symbol, "err", err)
		return 0, false
	}
	return p, ok
}

// RunPrices consumes the price feed and routes each update to the
// sessions mounted on that symbol. Blocks until ctx is cancelled;
// no-op when no feed is configured.
func (h *Hub) RunPrices(ctx context.Context) {
	if h.prices == nil {
		return
	}
	h.prices.Watch(ctx, func(symbol string, price float64) {
		h.metrics.PriceUpdates.Inc()
		h.mu.RLock()
		for c := range h.clients {
			c.OfferPrice(symbol, price)
		}
		h.mu.RUnlock()
	})
}

// HandleWS registers a new session on an upgraded connection and
// starts its pumps.
func (h *Hub) HandleWS(ctx context.Context, conn *websocket.Conn) {
	c := newClient(h, conn)

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.WSClients.Set(float64(count))
	h.log.Info("chart session connected", "sessions", count)

	go c.writePump()
	go c.sessionLoop(ctx)
	go c.readPump()
}

// RemoveClient unregisters a session.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		// done fans the shutdown out to the write pump and session
		// loop; send stays open so late frames cannot panic a sender.
		close(c.done)
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.WSClients.Set(float64(count))
	h.log.Info("chart session disconnected", "sessions", count)
}

// ClientCount returns the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
