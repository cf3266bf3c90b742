// Package db opens and initialises the embedded SQLite database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const fileName = "sales-system.db"

// ResolvePath returns the database file location. Development builds keep the
// file next to the working directory; packaged builds place it under the
// per-user configuration directory. An explicit override wins in both modes.
func ResolvePath(override string, production bool) (string, error) {
	if override != "" {
		return override, nil
	}
	if !production {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("platform/db: resolve working directory: %w", err)
		}
		return filepath.Join(wd, fileName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("platform/db: resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, "desktop-sales-control")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("platform/db: create data dir: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}

// Open creates a connection to the database file. Pragmas are carried in the
// DSN so every pooled connection gets them: WAL for durability alongside
// concurrent readers, enforced foreign keys, and a busy timeout instead of
// immediate SQLITE_BUSY failures.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: open: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}
	return conn, nil
}

// Init creates the tables if they do not exist yet. Timestamps are stored as
// local-time TEXT so date-window filters compare lexicographically.
func Init(ctx context.Context, conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT (datetime('now','localtime'))
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			total_amount REAL NOT NULL,
			payment_method TEXT NOT NULL,
			status TEXT DEFAULT 'completed',
			created_at DATETIME DEFAULT (datetime('now','localtime'))
		)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sale_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			subtotal REAL NOT NULL,
			FOREIGN KEY (sale_id) REFERENCES sales(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: init schema: %w", err)
		}
	}
	return nil
}
