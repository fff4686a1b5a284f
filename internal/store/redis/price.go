// Package redis delivers the current-price scalar the chart draws as a
// dashed line. The price refreshes independently of (and more often
// than) the candle series, so it rides Redis PubSub rather than the
// history store.
package redis

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const (
	latestKeyPrefix = "price:latest:"
	priceChanPrefix = "price:"
)

// PriceWatcher reads the latest price per symbol and streams updates.
type PriceWatcher struct {
	client *goredis.Client
}

// NewPriceWatcher connects and pings the server.
func NewPriceWatcher(addr, password string) (*PriceWatcher, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[price-watcher] connected to %s", addr)
	return &PriceWatcher{client: client}, nil
}

// Latest returns the last published price for a symbol, or ok=false if
// none has been published yet.
func (w *PriceWatcher) Latest(ctx context.Context, symbol string) (price float64, ok bool, err error) {
	v, err := w.client.Get(ctx, latestKeyPrefix+symbol).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get latest price: %w", err)
	}
	p, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse price %q: %w", v, err)
	}
	return p, true, nil
}

// Watch subscribes to price updates for all symbols and invokes fn for
// each one. Blocks until ctx is cancelled. Malformed payloads are
// logged and skipped.
func (w *PriceWatcher) Watch(ctx context.Context, fn func(symbol string, price float64)) {
	pubsub := w.client.PSubscribe(ctx, priceChanPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			symbol := strings.TrimPrefix(msg.Channel, priceChanPrefix)
			if strings.HasPrefix(symbol, "latest:") {
				continue // keyspace noise, not a price channel
			}
			p, err := strconv.ParseFloat(msg.Payload, 64)
			if err != nil {
				log.Printf("[price-watcher] bad payload on %s: %q", msg.Channel, msg.Payload)
				continue
			}
			fn(symbol, p)
		}
	}
}

// Publish stores the latest price for a symbol and broadcasts it on the
// symbol's price channel. The seeding tool uses this; the gateway only
// reads.
func (w *PriceWatcher) Publish(ctx context.Context, symbol string, price float64) error {
	v := strconv.FormatFloat(price, 'f', -1, 64)
	if err := w.client.Set(ctx, latestKeyPrefix+symbol, v, 0).Err(); err != nil {
		return fmt.Errorf("redis set latest price: %w", err)
	}
	if err := w.client.Publish(ctx, priceChanPrefix+symbol, v).Err(); err != nil {
		return fmt.Errorf("redis publish price: %w", err)
	}
	return nil
}

// Close releases the connection.
func (w *PriceWatcher) Close() error {
	return w.client.Close()
}
