package tabular

import (
	"sync"

	"gridrl/grid"
)

// SyncedQTable wraps a Table with a mutex so that concurrent workers
// sharing one table get read-modify-write atomicity. BestActions and
// MaxValue take the same lock, so a read-update pair from a single
// worker is individually atomic; workers interleave at transition
// granularity, which is the documented semantics of the shared-table
// parallel mode.
type SyncedQTable struct {
	mu    sync.Mutex
	inner Table
}

// NewSynced wraps inner for shared use across goroutines.
func NewSynced(inner Table) *SyncedQTable {
	return &SyncedQTable{inner: inner}
}

// Value implements Table.
func (s *SyncedQTable) Value(state grid.Coordinate, action grid.Action) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Value(state, action)
}

// Update implements Table.
func (s *SyncedQTable) Update(state grid.Coordinate, action grid.Action, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Update(state, action, value)
}

// BestActions implements Table.
func (s *SyncedQTable) BestActions(state grid.Coordinate) []grid.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.BestActions(state)
}

// MaxValue implements Table.
func (s *SyncedQTable) MaxValue(state grid.Coordinate) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.MaxValue(state)
}

// Snapshot implements Table.
func (s *SyncedQTable) Snapshot() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Snapshot()
}
