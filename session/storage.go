package session

import "sync"

// Storage persists the session record under a fixed name. Implementations
// must treat a missing record as (Session{}, false, nil); a record that
// exists but cannot be read returns an error, which the store treats as
// "no prior session".
type Storage interface {
	Load() (Session, bool, error)
	Save(Session) error
}

// InMemoryStorage keeps the record in process memory. Used by tests and
// by embeddings that do not want sessions to survive a restart.
type InMemoryStorage struct {
	mu     sync.Mutex
	record *Session
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

func (m *InMemoryStorage) Load() (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return Session{}, false, nil
	}
	return *m.record, true, nil
}

func (m *InMemoryStorage) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record := s
	m.record = &record
	return nil
}
