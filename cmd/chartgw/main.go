// cmd/chartgw serves interactive OHLC chart sessions over WebSocket.
// Each session mounts one engine instance; pointer/wheel events stream
// in, rendered PNG frames stream out. A static snapshot endpoint and
// Prometheus metrics ride alongside.
//
// Usage:
//
//	SQLITE_PATH=data/candles.db REDIS_ADDR=localhost:6379 go run ./cmd/chartgw
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chartview/config"
	"chartview/internal/api"
	"chartview/internal/gateway"
	"chartview/internal/logger"
	"chartview/internal/metrics"
	redisstore "chartview/internal/store/redis"
	sqlitestore "chartview/internal/store/sqlite"
)

func main() {
	cfg := config.Load()
	log := logger.Init("chartgw", logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sqlitestore.NewReader(cfg.SQLitePath)
	if err != nil {
		log.Error("sqlite open failed", "path", cfg.SQLitePath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	// The price feed is optional: without Redis the chart still works,
	// it just draws no current-price line.
	var prices *redisstore.PriceWatcher
	if cfg.RedisAddr != "" {
		prices, err = redisstore.NewPriceWatcher(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("price feed unavailable", "addr", cfg.RedisAddr, "err", err)
			prices = nil
		} else {
			defer prices.Close()
		}
	}

	m := metrics.New()
	tfs := cfg.ParseTFs()

	hub := gateway.NewHub(store, prices, m, tfs, log)
	hub.CanvasW = float64(cfg.CanvasWidth)
	hub.CanvasH = float64(cfg.CanvasHeight)
	hub.DPR = cfg.DPR
	hub.DefaultSymbol = cfg.DefaultSymbol
	go hub.RunPrices(ctx)

	metricsSrv := metrics.NewServer(cfg.MetricsAddr)
	metricsSrv.Start()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(ctx, hub, m, log),
	}

	go func() {
		log.Info("chart gateway listening", "addr", cfg.ListenAddr, "tfs", cfg.EnabledTFs)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server failed", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		log.Info("shutting down", "signal", s.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	metricsSrv.Stop(shutdownCtx)
	cancel()
}
