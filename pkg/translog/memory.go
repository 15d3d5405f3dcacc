package translog

import (
	"context"
	"sync"
)

// MemoryStorage keeps entries in process memory. Appends are O(1); the log
// grows unbounded unless a maximum is configured.
type MemoryStorage struct {
	mu         sync.RWMutex
	entries    []Entry
	maxEntries int
}

// MemoryOption configures a MemoryStorage.
type MemoryOption func(*MemoryStorage)

// WithMaxEntries bounds the log: once the limit is reached the oldest entry
// is dropped on append. Zero or negative keeps the log unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStorage) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// NewMemoryStorage creates an in-memory transaction log storage.
func NewMemoryStorage(opts ...MemoryOption) *MemoryStorage {
	s := &MemoryStorage{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStorage) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStorage) Recent(_ context.Context, n int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.entries) == 0 {
		return nil, nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}

	out := make([]Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out, nil
}

// Len returns the number of stored entries.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
