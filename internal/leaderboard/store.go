package leaderboard

import "sync"

// Keys used in the persistence port.
const (
	KeyUsername = "username"
	KeyGUID     = "guid"
	KeyEntries  = "entries"
	KeyPending  = "pending"
)

// Store is durable key/value storage for identity and cached leaderboard
// state. Values survive process restarts.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryStore is an in-process Store, used in tests and when no database is
// available.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
