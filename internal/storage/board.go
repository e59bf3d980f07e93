package storage

import (
	"fmt"
	"time"
)

// BoardEntry is one upload received by the board server.
type BoardEntry struct {
	ID        int64
	Username  string
	Score     int
	UserGUID  string // Composite "<guid>-<ms>" submission key
	Extra     string
	CreatedAt time.Time
}

// AddBoardEntry appends an upload. A repeated submission key is ignored so
// that client retries stay idempotent; the return value reports whether a
// row was inserted.
func (s *Store) AddBoardEntry(e BoardEntry) (bool, error) {
	result, err := s.db.Exec(
		"INSERT OR IGNORE INTO board_entries (username, score, user_guid, extra) VALUES (?, ?, ?, ?)",
		e.Username, e.Score, e.UserGUID, e.Extra,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save board entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// BoardEntries returns every upload, best score first. Ties keep upload
// order. A positive limit caps the result.
func (s *Store) BoardEntries(limit int) ([]BoardEntry, error) {
	query := `SELECT id, username, score, user_guid, extra, created_at
		 FROM board_entries
		 ORDER BY score DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board: %w", err)
	}
	defer rows.Close()

	var entries []BoardEntry
	for rows.Next() {
		var e BoardEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &e.UserGUID, &e.Extra, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan board row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
