// Package history keeps a local log of episodes the watcher has notified.
// The log is advisory: the delivery contract rests solely on the state
// file, and recording failures never fail a watcher run.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Episode is one notified feed entry.
type Episode struct {
	ID         int64
	GUID       string
	Title      string
	Published  string
	EpisodeURL string
	AudioURL   string
	NotifiedAt time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// New opens or creates the history database at the given path.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// Enable WAL mode for better concurrency.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		published TEXT,
		episode_url TEXT,
		audio_url TEXT,
		notified_at DATETIME NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record stores a notified episode. Re-recording the same guid updates the
// notification time instead of failing.
func (s *Store) Record(ep Episode) error {
	notifiedAt := ep.NotifiedAt
	if notifiedAt.IsZero() {
		notifiedAt = time.Now()
	}
	_, err := s.conn.Exec(`
		INSERT INTO episodes (guid, title, published, episode_url, audio_url, notified_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(guid) DO UPDATE SET notified_at = excluded.notified_at`,
		ep.GUID, ep.Title, ep.Published, ep.EpisodeURL, ep.AudioURL, notifiedAt)
	return err
}

// Recent returns the most recently notified episodes, newest first.
func (s *Store) Recent(limit int) ([]Episode, error) {
	rows, err := s.conn.Query(`
		SELECT id, guid, title, published, episode_url, audio_url, notified_at
		FROM episodes ORDER BY notified_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eps []Episode
	for rows.Next() {
		var ep Episode
		if err := rows.Scan(&ep.ID, &ep.GUID, &ep.Title, &ep.Published,
			&ep.EpisodeURL, &ep.AudioURL, &ep.NotifiedAt); err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, rows.Err()
}
