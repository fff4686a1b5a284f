// cmd/seedhist seeds the candle history database with simulated
// random-walk data so the chart gateway can run without real broker
// credentials. Optionally publishes each symbol's final close as the
// current price in Redis.
//
// Usage:
//
//	go run ./cmd/seedhist --db=data/candles.db --symbols=BTCUSD,ETHUSD --candles=2000
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"chartview/internal/model"
	redisstore "chartview/internal/store/redis"
	sqlitestore "chartview/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	// Flags
	dbPath := flag.String("db", "data/candles.db", "Path to SQLite candle history")
	symbols := flag.String("symbols", "BTCUSD", "Comma-separated symbols to seed")
	candles := flag.Int("candles", 2000, "1-minute candles to generate per symbol")
	startPrice := flag.Float64("start", 100, "Starting price of the walk")
	seed := flag.Int64("seed", 0, "RNG seed (0 uses the current time)")
	redisAddr := flag.String("redis", "", "Redis address for publishing latest prices (empty skips)")
	redisPassword := flag.String("redis-password", "", "Redis password")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	writer, err := sqlitestore.NewWriter(*dbPath)
	if err != nil {
		log.Fatalf("[seedhist] sqlite open failed: %v", err)
	}
	defer writer.Close()

	var prices *redisstore.PriceWatcher
	if *redisAddr != "" {
		prices, err = redisstore.NewPriceWatcher(*redisAddr, *redisPassword)
		if err != nil {
			log.Fatalf("[seedhist] redis connect failed: %v", err)
		}
		defer prices.Close()
	}

	// Buckets end at the most recent whole minute.
	end := time.Now().Unix()
	end -= end % int64(model.TF1m)
	start := end - int64(*candles)*int64(model.TF1m)

	for _, symbol := range strings.Split(*symbols, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}

		cs, vs := walk(rng, start, *candles, *startPrice)
		if err := writer.WriteCandles(symbol, cs, vs); err != nil {
			log.Fatalf("[seedhist] write failed for %s: %v", symbol, err)
		}
		last := cs[len(cs)-1].Close
		log.Printf("[seedhist] seeded %s: %d candles, last close %.2f", symbol, len(cs), last)

		if prices != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := prices.Publish(ctx, symbol, last)
			cancel()
			if err != nil {
				log.Fatalf("[seedhist] price publish failed for %s: %v", symbol, err)
			}
		}
	}
}

// walk generates n 1-minute candles of a geometric random walk starting
// at startPrice, with volume loosely tracking the candle's range.
func walk(rng *rand.Rand, start int64, n int, startPrice float64) ([]model.Candle, []model.VolumeSample) {
	candles := make([]model.Candle, 0, n)
	samples := make([]model.VolumeSample, 0, n)

	price := startPrice
	for i := 0; i < n; i++ {
		ts := start + int64(i)*int64(model.TF1m)

		open := price
		high, low := open, open
		// Four intra-minute steps give the candle a believable shape.
		for s := 0; s < 4; s++ {
			price *= 1 + rng.NormFloat64()*0.002
			if price < 0.01 {
				price = 0.01
			}
			if price > high {
				high = price
			}
			if price < low {
				low = price
			}
		}

		candles = append(candles, model.Candle{
			Time: ts, Open: open, High: high, Low: low, Close: price,
		})
		spread := (high - low) / math.Max(open, 0.01)
		samples = append(samples, model.VolumeSample{
			Time:   ts,
			Volume: math.Floor(100 + 50000*spread + rng.Float64()*100),
		})
	}
	return candles, samples
}
