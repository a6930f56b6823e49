// Package history provides the SQLite-backed interaction archive.
// The capped in-memory log in the swarm state is what prompts see;
// the archive is the uncapped audit trail of every invocation.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dbankscard/claude-swarm/internal/swarm"
)

// DB wraps an SQLite database holding archived interactions.
type DB struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// DefaultPath returns the XDG data path for the archive.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "claude-swarm", "history.db")
}

// Open opens the archive at the given path, creating parent
// directories and applying migrations. WAL mode is enabled for
// concurrent reads.
func Open(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}

// Path returns the path to the archive file.
func (db *DB) Path() string {
	return db.path
}

// migrate applies the schema.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			agent TEXT NOT NULL DEFAULT '',
			task TEXT NOT NULL,
			response TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create interactions table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_interactions_agent
		ON interactions(agent, created_at)
	`)
	if err != nil {
		return fmt.Errorf("create agent index: %w", err)
	}

	return nil
}

// Record archives one interaction.
func (db *DB) Record(rec swarm.Interaction) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO interactions (id, agent, task, response, error, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Agent, rec.Task, rec.Response, rec.Error, boolToInt(rec.Success), rec.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	return nil
}

// Recent returns the most recent interactions, newest first.
func (db *DB) Recent(limit int) ([]swarm.Interaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return db.query(`
		SELECT id, agent, task, response, error, success, created_at
		FROM interactions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
}

// ByAgent returns the most recent interactions for one agent, newest
// first.
func (db *DB) ByAgent(agent string, limit int) ([]swarm.Interaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return db.query(`
		SELECT id, agent, task, response, error, success, created_at
		FROM interactions
		WHERE agent = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, agent, limit)
}

func (db *DB) query(q string, args ...any) ([]swarm.Interaction, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []swarm.Interaction
	for rows.Next() {
		var rec swarm.Interaction
		var success int
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Agent, &rec.Task, &rec.Response, &rec.Error, &success, &createdAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		rec.Success = success != 0
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.Timestamp = ts
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Verify DB implements the orchestrator's archiver at compile time.
var _ swarm.Archiver = (*DB)(nil)
