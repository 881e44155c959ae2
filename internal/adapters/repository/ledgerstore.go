package repository

import (
	"context"
	"sync"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/metrics"
)

// In-memory LedgerStore implementation.
//
// Entries live in a map keyed by the natural composite key, with a
// side slice recording first-insertion order. A replacement rewrites
// the map value and keeps the slice position, so Snapshot order is
// stable across resubmissions. The single RWMutex makes each replace
// atomic: readers see the old or the new entry, never a torn one.

// MemoryLedger implements LedgerStore with a mutex-guarded map.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[model.Key]model.ScoreEntry
	order   []model.Key
	metrics bool
}

// LedgerOption applies a configuration option to the MemoryLedger.
type LedgerOption func(*MemoryLedger)

// WithLedgerMetrics toggles gauge updates on ledger mutations.
func WithLedgerMetrics(enabled bool) LedgerOption {
	return func(s *MemoryLedger) {
		s.metrics = enabled
	}
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger(opts ...LedgerOption) *MemoryLedger {
	s := &MemoryLedger{
		entries: make(map[model.Key]model.ScoreEntry),
		metrics: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Upsert replaces or inserts the entry under its natural key.
func (s *MemoryLedger) Upsert(_ context.Context, e model.ScoreEntry) (bool, error) {
	key := e.Key()
	stored := e.Clone()

	s.mu.Lock()
	_, replaced := s.entries[key]
	s.entries[key] = stored
	if !replaced {
		s.order = append(s.order, key)
	}
	size := len(s.entries)
	s.mu.Unlock()

	if s.metrics {
		metrics.UpdateLedgerEntries(size)
	}
	return replaced, nil
}

// Reset deletes every entry.
func (s *MemoryLedger) Reset(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[model.Key]model.ScoreEntry)
	s.order = nil
	s.mu.Unlock()

	if s.metrics {
		metrics.UpdateLedgerEntries(0)
	}
	return nil
}

// Snapshot returns a deep copy of all entries in insertion order.
func (s *MemoryLedger) Snapshot(_ context.Context) []model.ScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScoreEntry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key].Clone())
	}
	return out
}

// Len returns the current number of entries.
func (s *MemoryLedger) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
