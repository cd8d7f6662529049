package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridrl/grid"
)

func TestNewEGreedyValidation(t *testing.T) {
	q := NewQTable()

	tests := []struct {
		name    string
		table   Table
		epsilon float64
		decay   float64
		step    float64
		floor   float64
	}{
		{"nil table", nil, 0.5, 0.99, 0, 0.01},
		{"epsilon above one", q, 1.5, 0.99, 0, 0.01},
		{"negative epsilon", q, -0.1, 0.99, 0, 0.01},
		{"zero decay", q, 0.5, 0, 0, 0.01},
		{"decay above one", q, 0.5, 1.1, 0, 0.01},
		{"negative step", q, 0.5, 0.99, -0.1, 0.01},
		{"floor above one", q, 0.5, 0.99, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEGreedy(tt.table, tt.epsilon, tt.decay, tt.step,
				tt.floor, 1)
			assert.Error(t, err)
		})
	}
}

func TestEGreedyGreedyWhenEpsilonZero(t *testing.T) {
	q := NewQTable()
	s := grid.Coordinate{Row: 0, Col: 0}
	q.Update(s, grid.Down, 1.0)

	p, err := NewEGreedy(q, 0, 0.99, 0, 0, 3)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.Equal(t, grid.Down, p.SelectAction(s))
	}
}

func TestEGreedyTiesBreakAcrossAllMaximizers(t *testing.T) {
	q := NewQTable()
	s := grid.Coordinate{Row: 1, Col: 1}

	p, err := NewEGreedy(q, 0, 0.99, 0, 0, 11)
	require.NoError(t, err)

	// Empty table: all four actions tie at zero. A greedy policy must
	// still reach every one of them.
	seen := make(map[grid.Action]bool)
	for i := 0; i < 400; i++ {
		seen[p.SelectAction(s)] = true
	}
	assert.Len(t, seen, grid.NumActions)
}

func TestEGreedySeededRunsAreReproducible(t *testing.T) {
	build := func() *EGreedy {
		q := NewQTable()
		s := grid.Coordinate{Row: 0, Col: 0}
		q.Update(s, grid.Up, 0.3)
		q.Update(s, grid.Left, 0.1)
		p, err := NewEGreedy(q, 0.4, 0.99, 0, 0.01, 123)
		require.NoError(t, err)
		return p
	}

	a, b := build(), build()
	s := grid.Coordinate{Row: 0, Col: 0}
	for i := 0; i < 200; i++ {
		require.Equal(t, a.SelectAction(s), b.SelectAction(s), "draw %d", i)
	}
}

func TestEGreedyProbabilities(t *testing.T) {
	q := NewQTable()
	s := grid.Coordinate{Row: 0, Col: 0}
	q.Update(s, grid.Up, 1.0)

	p, err := NewEGreedy(q, 0.4, 0.99, 0, 0.01, 1)
	require.NoError(t, err)

	probs := p.Probabilities(s)
	require.Len(t, probs, grid.NumActions)
	assert.InDelta(t, 0.1+0.6, probs[int(grid.Up)], 1e-12)
	for _, a := range []grid.Action{grid.Down, grid.Left, grid.Right} {
		assert.InDelta(t, 0.1, probs[int(a)], 1e-12)
	}

	sum := 0.0
	for _, pr := range probs {
		sum += pr
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestMultiplicativeDecayStopsAtFloor(t *testing.T) {
	p, err := NewEGreedy(NewQTable(), 0.5, 0.5, 0, 0.2, 1)
	require.NoError(t, err)

	p.Decay()
	assert.InDelta(t, 0.25, p.Epsilon(), 1e-12)
	p.Decay()
	assert.InDelta(t, 0.2, p.Epsilon(), 1e-12)
	p.Decay()
	assert.InDelta(t, 0.2, p.Epsilon(), 1e-12, "never below the floor")
}

func TestSubtractiveDecayStopsAtFloor(t *testing.T) {
	p, err := NewEGreedy(NewQTable(), 0.5, 0.99, 0.2, 0.05, 1)
	require.NoError(t, err)

	p.Decay()
	assert.InDelta(t, 0.3, p.Epsilon(), 1e-12)
	p.Decay()
	assert.InDelta(t, 0.1, p.Epsilon(), 1e-12)
	p.Decay()
	assert.InDelta(t, 0.05, p.Epsilon(), 1e-12)
	p.Decay()
	assert.InDelta(t, 0.05, p.Epsilon(), 1e-12, "never below the floor")
}
