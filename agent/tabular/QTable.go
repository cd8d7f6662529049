// Package tabular implements the action-value stores and the e-greedy
// selection rule shared by the tabular agents.
package tabular

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gridrl/grid"
	"gridrl/utils/floatutils"
)

// Table is the action-value store contract. Reads of absent entries
// return the table's default value without mutating the table; growth
// is bounded by |states| x |actions|.
type Table interface {
	// Value returns the stored estimate for (state, action), or the
	// default for entries never written. It never fails and never
	// mutates the table.
	Value(state grid.Coordinate, action grid.Action) float64

	// Update overwrites or creates the entry for (state, action).
	Update(state grid.Coordinate, action grid.Action, value float64)

	// BestActions returns every action attaining the maximum value in
	// state, including unseen default-valued actions when nothing has
	// been written for the state yet.
	BestActions(state grid.Coordinate) []grid.Action

	// MaxValue returns max over the action space of Value(state, a).
	MaxValue(state grid.Coordinate) float64

	// Snapshot exports the table as a string-keyed mapping in the
	// persisted "row,col:action" format.
	Snapshot() map[string]float64
}

type entryKey struct {
	state  grid.Coordinate
	action grid.Action
}

// QTable is a sparse action-value store backed by a hash map. Entries
// are created lazily on first write; unseen entries read as 0.
type QTable struct {
	values map[entryKey]float64
}

// NewQTable returns an empty sparse table.
func NewQTable() *QTable {
	return &QTable{values: make(map[entryKey]float64)}
}

// Value implements Table.
func (q *QTable) Value(state grid.Coordinate, action grid.Action) float64 {
	return q.values[entryKey{state, action}]
}

// Update implements Table.
func (q *QTable) Update(state grid.Coordinate, action grid.Action, value float64) {
	q.values[entryKey{state, action}] = value
}

// BestActions implements Table.
func (q *QTable) BestActions(state grid.Coordinate) []grid.Action {
	return bestActions(q, state)
}

// MaxValue implements Table.
func (q *QTable) MaxValue(state grid.Coordinate) float64 {
	return maxValue(q, state)
}

// Len returns the number of entries that have been written.
func (q *QTable) Len() int { return len(q.values) }

// Snapshot implements Table.
func (q *QTable) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(q.values))
	for k, v := range q.values {
		out[encodeKey(k.state, k.action)] = v
	}
	return out
}

// bestActions and maxValue are shared by every Table implementation so
// that the sparse and dense stores stay interchangeable.
func bestActions(t Table, state grid.Coordinate) []grid.Action {
	actions := grid.Actions()
	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = t.Value(state, a)
	}

	_, indices := floatutils.MaxSlice(values)
	best := make([]grid.Action, len(indices))
	for i, idx := range indices {
		best[i] = actions[idx]
	}
	return best
}

func maxValue(t Table, state grid.Coordinate) float64 {
	actions := grid.Actions()
	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = t.Value(state, a)
	}
	return floatutils.Max(values...)
}

func encodeKey(state grid.Coordinate, action grid.Action) string {
	return state.Key() + ":" + action.String()
}

func decodeKey(s string) (grid.Coordinate, grid.Action, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return grid.Coordinate{}, 0, fmt.Errorf("malformed table key %q", s)
	}

	state, err := grid.ParseCoordinate(parts[0])
	if err != nil {
		return grid.Coordinate{}, 0, err
	}

	for _, a := range grid.Actions() {
		if a.String() == parts[1] {
			return state, a, nil
		}
	}
	return grid.Coordinate{}, 0, fmt.Errorf("malformed table key %q: unknown action %q",
		s, parts[1])
}

// SaveTable writes a table to path as a JSON object mapping
// "row,col:action" keys to values. An empty table writes an empty
// object.
func SaveTable(t Table, path string) error {
	data, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("save q-table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save q-table: %w", err)
	}
	return nil
}

// LoadQTable reads a table previously written by Save. Loading an
// empty object yields a fresh table.
func LoadQTable(path string) (*QTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load q-table: %w", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load q-table: %w", err)
	}

	q := NewQTable()
	for key, value := range raw {
		state, action, err := decodeKey(key)
		if err != nil {
			return nil, fmt.Errorf("load q-table: %w", err)
		}
		q.Update(state, action, value)
	}
	return q, nil
}
