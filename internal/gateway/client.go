package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chartview/internal/chart"
	"chartview/internal/model"
	"chartview/internal/ringbuf"
	"chartview/internal/surface/raster"
)

// Client is a single chart session: one WebSocket peer, one engine,
// one raster surface. The session loop goroutine exclusively owns the
// engine and surface; the read pump and price fan-out only touch the
// ring and channels.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	// Input path: read pump produces, session loop consumes.
	ring   *ringbuf.Ring
	notify chan struct{}
	loads  chan LoadMsg
	prices chan float64

	mu     sync.RWMutex
	symbol string
	tf     model.Timeframe
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 8),
		done:   make(chan struct{}),
		ring:   ringbuf.New(256),
		notify: make(chan struct{}, 1),
		loads:  make(chan LoadMsg, 4),
		prices: make(chan float64, 8),
	}
}

// OfferPrice hands a current-price update to this session if it is
// mounted on the symbol. Non-blocking; a full channel drops the update
// (the next one supersedes it anyway).
func (c *Client) OfferPrice(symbol string, price float64) {
	c.mu.RLock()
	mine := c.symbol == symbol
	c.mu.RUnlock()
	if !mine {
		return
	}
	select {
	case c.prices <- price:
	default:
	}
}

func (c *Client) setMounted(symbol string, tf model.Timeframe) {
	c.mu.Lock()
	c.symbol = symbol
	c.tf = tf
	c.mu.Unlock()
}

func (c *Client) mounted() (string, model.Timeframe) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbol, c.tf
}

// readPump parses inbound messages: input events go through the SPSC
// ring (wake the session loop once per burst), series loads through
// their own channel.
func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var base struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(msg, &base) != nil {
			continue
		}

		switch base.Type {
		case "LOAD":
			var load LoadMsg
			if err := json.Unmarshal(msg, &load); err != nil {
				c.sendError("", "invalid LOAD: "+err.Error())
				continue
			}
			select {
			case c.loads <- load:
			default:
				c.sendError(load.ReqID, "load queue full")
			}

		case "EVENT":
			var evMsg EventMsg
			if err := json.Unmarshal(msg, &evMsg); err != nil {
				continue
			}
			ev, err := parseEvent(evMsg)
			if err != nil {
				continue
			}
			if !c.ring.Push(ev) {
				c.hub.metrics.RingOverflow.Inc()
				continue
			}
			select {
			case c.notify <- struct{}{}:
			default:
			}
		}
	}
}

// writePump flushes outbound frames and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sessionLoop owns this session's engine and surface. All chart
// mutation happens here, one event at a time, in delivery order; the
// engine itself stays lock-free.
func (c *Client) sessionLoop(ctx context.Context) {
	h := c.hub
	eng := chart.NewEngine(h.CanvasW, h.CanvasH)
	surf, err := raster.New(h.CanvasW, h.CanvasH, h.DPR)
	if err != nil {
		h.log.Error("surface allocation failed", "err", err)
		c.conn.Close()
		return
	}

	var seq int64

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return

		case load := <-c.loads:
			c.handleLoad(eng, load)
			seq++
			c.pushFrame(eng, surf, seq, load.ReqID)

		case p := <-c.prices:
			eng.SetCurrentPrice(p)
			seq++
			c.pushFrame(eng, surf, seq, "")

		case <-c.notify:
			// Drain the whole burst before repainting once.
			for {
				ev, ok := c.ring.Pop()
				if !ok {
					break
				}
				if ev.Kind == model.EvResize && ev.W > 0 && ev.H > 0 {
					if ns, err := raster.New(ev.W, ev.H, h.DPR); err == nil {
						surf = ns
					}
				}
				eng.Apply(ev)
				h.metrics.EventsTotal.WithLabelValues(eventKindNames[ev.Kind]).Inc()
			}
			seq++
			c.pushFrame(eng, surf, seq, "")
		}
	}
}

// handleLoad mounts a new series on the engine.
func (c *Client) handleLoad(eng *chart.Engine, load LoadMsg) {
	tf, err := model.ParseTimeframe(load.TF)
	if err != nil {
		c.sendError(load.ReqID, err.Error())
		return
	}
	limit := load.Candles
	if limit <= 0 {
		limit = 500
	}

	series, err := c.hub.LoadSeries(load.Symbol, tf, limit)
	if err != nil {
		c.sendError(load.ReqID, "series load failed: "+err.Error())
		return
	}

	eng.SetSeries(series)
	c.setMounted(load.Symbol, tf)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if p, ok := c.hub.LatestPrice(ctx, load.Symbol); ok {
		eng.SetCurrentPrice(p)
	}
	cancel()

	c.hub.log.Info("series mounted",
		"symbol", load.Symbol, "tf", tf.Label(), "candles", series.Len())
}

// pushFrame renders, encodes and queues one frame envelope. A slow
// consumer drops frames rather than stalling the session loop.
func (c *Client) pushFrame(eng *chart.Engine, surf *raster.Surface, seq int64, reqID string) {
	start := time.Now()
	eng.Render(surf)
	c.hub.metrics.RenderDur.Observe(time.Since(start).Seconds())
	c.hub.metrics.FramesTotal.Inc()

	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf); err != nil {
		c.hub.log.Error("frame encode failed", "err", err)
		return
	}

	symbol, tf := c.mounted()
	vp := eng.Viewport()
	out := FrameOut{
		Type:   "frame",
		Seq:    seq,
		Symbol: symbol,
		TF:     tf.Label(),
		PNG:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		Viewport: ViewportOut{
			Zoom:    vp.Zoom(),
			Pan:     vp.Pan(),
			Visible: vp.VisibleCount(),
		},
		ReqID: reqID,
	}
	if cdl, vol, ok := eng.Tooltip(); ok {
		out.Tooltip = &TooltipOut{Candle: cdl, Volume: vol}
	}
	if sum, ok := eng.Range(); ok {
		out.Range = &RangeOut{
			From:       sum.From,
			To:         sum.To,
			Candles:    sum.Candles,
			PriceDelta: sum.PriceDelta,
			Percent:    sum.Percent,
		}
	}

	env, _ := json.Marshal(out)
	select {
	case c.send <- env:
	default:
	}
}

func (c *Client) sendError(reqID, msg string) {
	env, _ := json.Marshal(ErrorOut{Type: "error", ReqID: reqID, Message: msg})
	select {
	case c.send <- env:
	default:
	}
}
