package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection and applies the catalog schema.
// The special path ":memory:" opens a private in-memory database.
func NewDB(dbPath string) (*DB, error) {
	inMemory := dbPath == ":memory:"

	if !inMemory {
		// Ensure directory exists
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// every new connection would see an empty database
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db}, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model_number TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			brand TEXT NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS parts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			part_number TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
			in_stock BOOLEAN DEFAULT 1,
			image_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS compatibility (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			part_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
			UNIQUE(part_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS installation_guides (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			part_id INTEGER UNIQUE NOT NULL,
			instructions TEXT NOT NULL,
			difficulty TEXT,
			estimated_time TEXT,
			tools_required TEXT,
			video_url TEXT,
			FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS troubleshooting_guides (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_type TEXT NOT NULL,
			issue TEXT NOT NULL,
			solution TEXT NOT NULL,
			related_parts TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(product_type, issue)
		)`,
		`CREATE TABLE IF NOT EXISTS chat_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			user_message TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			intent TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_compatibility_product ON compatibility(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_history_session ON chat_history(session_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// likePattern wraps s for a substring LIKE match, escaping LIKE wildcards.
// Queries using it must declare ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
