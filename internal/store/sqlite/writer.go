package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chartview/internal/model"
)

// Writer seeds the candle history table. The gateway only reads; the
// writer exists for the seeding tool and for tests.
type Writer struct {
	db *sql.DB
}

// NewWriter opens a single-connection SQLite writer and ensures the
// schema exists.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open writer: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite-writer] opened %s", dbPath)
	return &Writer{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS candles (
			symbol TEXT    NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL    NOT NULL,
			high   REAL    NOT NULL,
			low    REAL    NOT NULL,
			close  REAL    NOT NULL,
			volume REAL,
			PRIMARY KEY (symbol, ts)
		);
	`)
	return err
}

// WriteCandles inserts base candles with their volume samples in a
// single transaction. samples pairs with candles by position; a short
// samples slice leaves the remaining volumes NULL-equivalent (zero).
func (w *Writer) WriteCandles(symbol string, candles []model.Candle, samples []model.VolumeSample) error {
	if len(candles) == 0 {
		return nil
	}

	start := time.Now()
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO candles (symbol, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range candles {
		vol := 0.0
		if i < len(samples) {
			vol = samples[i].Volume
		}
		if _, err := stmt.Exec(symbol, c.Time, c.Open, c.High, c.Low, c.Close, vol); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite insert candle: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	log.Printf("[sqlite-writer] committed %d candles for %s in %v", len(candles), symbol, time.Since(start))
	return nil
}

// LastTimestamp returns the newest stored candle time for a symbol, or
// 0 when the symbol has no history yet.
func (w *Writer) LastTimestamp(symbol string) (int64, error) {
	var ts sql.NullInt64
	err := w.db.QueryRow(`SELECT MAX(ts) FROM candles WHERE symbol = ?`, symbol).Scan(&ts)
	if err != nil {
		return 0, fmt.Errorf("sqlite last timestamp: %w", err)
	}
	if !ts.Valid {
		return 0, nil
	}
	return ts.Int64, nil
}

// Close closes the database.
func (w *Writer) Close() error {
	return w.db.Close()
}
