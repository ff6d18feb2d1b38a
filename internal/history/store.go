package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/jmoiron/sqlx"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Entry is one attempt at joining a network. Passwords are never stored.
type Entry struct {
	ID        int64     `db:"id" json:"id" yaml:"id"`
	SSID      string    `db:"ssid" json:"ssid" yaml:"ssid"`
	Security  string    `db:"security" json:"security" yaml:"security"`
	Hidden    bool      `db:"hidden" json:"hidden" yaml:"hidden"`
	Source    string    `db:"source" json:"source" yaml:"source"`
	Added     bool      `db:"added" json:"added" yaml:"added"`
	Joined    bool      `db:"joined" json:"joined" yaml:"joined"`
	Message   string    `db:"message" json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt time.Time `db:"-" json:"created_at" yaml:"created_at"`
	Created   int64     `db:"created_at" json:"-" yaml:"-"` // unix milliseconds
}

type Store struct {
	db  *sqlx.DB
	log logr.Logger
}

func NewStore(log logr.Logger, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		log.Error(err, "Failed to connect to database", "dbType", "sqlite3", "dbName", path)
		return nil, err
	}

	s := &Store{
		db:  db,
		log: log.WithName("history"),
	}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTable() error {
	schema := `
    CREATE TABLE IF NOT EXISTS joins (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ssid TEXT NOT NULL,
        security TEXT NOT NULL,
        hidden INTEGER NOT NULL DEFAULT 0,
        source TEXT NOT NULL DEFAULT '',
        added INTEGER NOT NULL DEFAULT 0,
        joined INTEGER NOT NULL DEFAULT 0,
        message TEXT NOT NULL DEFAULT '',
        created_at INTEGER NOT NULL
    );

    CREATE INDEX IF NOT EXISTS joins_created_at ON joins(created_at);
`
	_, err := s.db.Exec(schema)
	if err != nil {
		s.log.Error(err, "Failed to execute create table query")
	}
	return err
}

func (s *Store) Close() error {
	s.log.V(1).Info("Closing database connection")
	return s.db.Close()
}

// Record appends e and returns its id. A zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.Created = e.CreatedAt.UnixMilli()

	query := `
    INSERT INTO joins (ssid, security, hidden, source, added, joined, message, created_at)
    VALUES (:ssid, :security, :hidden, :source, :added, :joined, :message, :created_at)`
	res, err := s.db.NamedExecContext(ctx, query, e)
	if err != nil {
		s.log.Error(err, "Failed to record join", "ssid", e.SSID)
		return 0, err
	}
	return res.LastInsertId()
}

// List returns the most recent entries first. limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	var entries []Entry
	query := `SELECT id, ssid, security, hidden, source, added, joined, message, created_at
        FROM joins ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &entries, query, limit); err != nil {
		s.log.Error(err, "Failed to list joins")
		return nil, err
	}
	for i := range entries {
		entries[i].CreatedAt = time.UnixMilli(entries[i].Created)
	}
	return entries, nil
}
