// Package sqlite stores the base-resolution candle history. The chart
// gateway only reads it; the Writer side serves the seeding tool.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"chartview/internal/model"
)

// Reader loads base-resolution (1-minute) candle history per symbol.
type Reader struct {
	db *sql.DB
}

// NewReader opens a SQLite connection for reading.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open reader: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	log.Printf("[sqlite-reader] opened %s", dbPath)
	return &Reader{db: db}, nil
}

// ReadHistory reads up to limit most recent base candles for a symbol,
// returned oldest-first along with their volume samples. limit <= 0
// reads everything.
func (r *Reader) ReadHistory(symbol string, limit int) ([]model.Candle, []model.VolumeSample, error) {
	q := `
		SELECT ts, open, high, low, close, volume
		FROM candles
		WHERE symbol = ?
		ORDER BY ts DESC
	`
	args := []interface{}{symbol}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite query candles: %w", err)
	}
	defer rows.Close()

	var candles []model.Candle
	var samples []model.VolumeSample
	for rows.Next() {
		var c model.Candle
		var vol float64
		if err := rows.Scan(&c.Time, &c.Open, &c.High, &c.Low, &c.Close, &vol); err != nil {
			return nil, nil, fmt.Errorf("sqlite scan candles: %w", err)
		}
		candles = append(candles, c)
		samples = append(samples, model.VolumeSample{Time: c.Time, Volume: vol})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	// Query was newest-first for the LIMIT; the chart wants oldest-first.
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
		samples[i], samples[j] = samples[j], samples[i]
	}
	return candles, samples, nil
}

// Symbols lists the distinct symbols present in the history table.
func (r *Reader) Symbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM candles ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("sqlite query symbols: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("sqlite scan symbol: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.db.Close()
}
