package cursor

import (
	"sync"
	"time"
)

// Cursor is the persisted incremental-load watermark: the last
// order_date that was successfully written to all sinks.
type Cursor struct {
	LastLoadDate string `json:"lastLoadDate"` // YYYY-MM-DD
	UpdatedAt    int64  `json:"updatedAt"`    // epoch seconds
}

// Store abstracts the cursor backend.
type Store interface {
	Load() (Cursor, bool, error)
	Save(c Cursor) error
	Close() error
}

// key under which the single watermark record is stored.
const key = "watermark:customer_orders"

// NowUnix returns current time in epoch seconds. Split for testability.
var NowUnix = func() int64 { return time.Now().UTC().Unix() }

// InMemoryStore keeps the cursor in process memory. Used by tests and by
// runs that opt out of persistence.
type InMemoryStore struct {
	mu  sync.RWMutex
	cur Cursor
	set bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load() (Cursor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.set, nil
}

func (s *InMemoryStore) Save(c Cursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = c
	s.set = true
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
