// Package db is the SQLite-backed booking store. It is the single
// persistence point for shops, services and bookings; the scheduling
// core only ever sees snapshots read from here.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type DB struct {
	*sql.DB
}

// NewDB opens the SQLite database at path and applies the schema.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{conn}
	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS shops (
			id            TEXT PRIMARY KEY,
			owner_id      TEXT NOT NULL,
			name          TEXT NOT NULL,
			open_time_24  TEXT NOT NULL DEFAULT '',
			close_time_24 TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id                  TEXT PRIMARY KEY,
			shop_id             TEXT NOT NULL REFERENCES shops(id),
			name                TEXT NOT NULL,
			price               TEXT NOT NULL DEFAULT '',
			estimated_duration  INTEGER NOT NULL DEFAULT 0,
			allows_multi_day    INTEGER NOT NULL DEFAULT 0,
			created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id               TEXT PRIMARY KEY,
			customer_id      TEXT NOT NULL,
			shop_id          TEXT NOT NULL,
			service_id       TEXT NOT NULL,
			service_name     TEXT NOT NULL DEFAULT '',
			shop_name        TEXT NOT NULL DEFAULT '',
			shop_owner_id    TEXT NOT NULL DEFAULT '',
			customer_name    TEXT NOT NULL DEFAULT '',
			customer_email   TEXT NOT NULL DEFAULT '',
			requested_date   TEXT NOT NULL,
			requested_time   TEXT NOT NULL,
			status           TEXT NOT NULL DEFAULT 'PENDING',
			notes            TEXT NOT NULL DEFAULT '',
			response_message TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_shop_date ON bookings(shop_id, requested_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_owner ON bookings(shop_owner_id)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
