package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// LocalPlayer is the score owner for games played in a local terminal.
const LocalPlayer = "local"

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Mode      string // Mode the run ended in
	Loop      int
	CreatedAt time.Time
}

// ScoreStats aggregates a player's local history.
type ScoreStats struct {
	Games      int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a finished game and returns the row ID.
func (s *Store) SaveScore(player string, score int, mode string, loop int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, score, mode, loop) VALUES (?, ?, ?, ?)",
		player, score, mode, loop,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best limit scores for player, highest first.
func (s *Store) TopScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, player, score, mode, loop, created_at
		 FROM scores
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Mode, &e.Loop, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for player, or 0.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE player = ?", player).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates player's scores.
func (s *Store) Stats(player string) (ScoreStats, error) {
	var st ScoreStats
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE player = ?`,
		player,
	).Scan(&st.Games, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed)
	if err != nil {
		return ScoreStats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// ClearScores deletes every score for player.
func (s *Store) ClearScores(player string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
