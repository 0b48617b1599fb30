// Package store provides the durable key/value side-store that persists
// session fields across process restarts. Each key carries its own expiry,
// mirroring the cookie store the session was originally kept in: keys are
// written independently, so a crash mid-update can leave a partially
// persisted session and readers must tolerate that.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTTL is how long a persisted key survives before it reads as absent.
const DefaultTTL = 24 * time.Hour

// Store is a sqlite-backed key/value store with per-key expiry.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	s := &Store{db: db, ttl: DefaultTTL}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS session (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  expires_at INTEGER NOT NULL
);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

// SetTTL changes the expiry applied to subsequent writes.
func (s *Store) SetTTL(d time.Duration) {
	s.ttl = d
}

// Put stores value under key, stamped to expire after the store's TTL.
func (s *Store) Put(key, value string) error {
	const stmt = `
INSERT INTO session (key, value, expires_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at;
`
	expires := time.Now().Add(s.ttl).Unix()
	if _, err := s.db.Exec(stmt, key, value, expires); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key. An expired or missing key reads
// as absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	var expires int64
	err := s.db.QueryRow(`SELECT value, expires_at FROM session WHERE key = ?`, key).
		Scan(&value, &expires)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	if time.Now().Unix() >= expires {
		// Lazy cleanup; a failed delete only delays it.
		s.db.Exec(`DELETE FROM session WHERE key = ?`, key)
		return "", false, nil
	}
	return value, true, nil
}

// Delete removes a single key.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every persisted key.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
