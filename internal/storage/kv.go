package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

// KV is a namespaced view of the kv table. Each SSH user gets its own
// namespace so identities never mix.
type KV struct {
	db        *sql.DB
	namespace string
}

// Ensure KV implements the leaderboard persistence port.
var _ leaderboard.Store = (*KV)(nil)

// KV returns the key/value view for namespace.
func (s *Store) KV(namespace string) *KV {
	return &KV{db: s.db, namespace: namespace}
}

// Get returns the value for key.
func (kv *KV) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND name = ?",
		kv.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s/%s: %w", kv.namespace, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(key, value string) error {
	_, err := kv.db.Exec(
		`INSERT INTO kv (namespace, name, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		kv.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", kv.namespace, key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (kv *KV) Delete(key string) error {
	if _, err := kv.db.Exec("DELETE FROM kv WHERE namespace = ? AND name = ?", kv.namespace, key); err != nil {
		return fmt.Errorf("storage: cannot delete %s/%s: %w", kv.namespace, key, err)
	}
	return nil
}
