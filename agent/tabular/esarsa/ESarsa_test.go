package esarsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/grid"
	"gridrl/timestep"
)

func TestLearnBootstrapsFromExpectation(t *testing.T) {
	h := agent.DefaultHyperparameters()
	h.Alpha = 0.1
	h.Gamma = 0.9
	h.Epsilon = 0.5

	q := tabular.NewQTable()
	ag, err := New(q, h, 1)
	require.NoError(t, err)

	s0 := grid.Coordinate{Row: 0, Col: 0}
	s1 := grid.Coordinate{Row: 0, Col: 1}
	q.Update(s1, grid.Up, 1.0)

	update := ag.Learn(timestep.Transition{
		State:     s0,
		Action:    grid.Right,
		Reward:    0,
		NextState: s1,
		Done:      false,
	})

	// With epsilon 0.5 the up action carries 0.5/4 + 0.5 = 0.625 mass,
	// so E[Q(s1, .)] = 0.625 and target = 0.9 * 0.625.
	assert.InDelta(t, 0.5625, update.Target, 1e-12)
	assert.InDelta(t, 0.05625, q.Value(s0, grid.Right), 1e-12)
}

func TestLearnTerminalIgnoresExpectation(t *testing.T) {
	h := agent.DefaultHyperparameters()
	h.Alpha = 0.5
	h.Gamma = 0.9

	q := tabular.NewQTable()
	ag, err := New(q, h, 1)
	require.NoError(t, err)

	s1 := grid.Coordinate{Row: 0, Col: 1}
	q.Update(s1, grid.Up, 100.0)

	update := ag.Learn(timestep.Transition{
		State:     grid.Coordinate{Row: 0, Col: 0},
		Action:    grid.Right,
		Reward:    1.0,
		NextState: s1,
		Done:      true,
	})
	assert.InDelta(t, 1.0, update.Target, 1e-12)
	assert.InDelta(t, 0.5, update.New, 1e-12)
}

func TestExpectationMatchesQLearningWhenGreedy(t *testing.T) {
	// With epsilon 0 and a unique maximizer, the expectation collapses
	// to the max and the update matches the off-policy target.
	h := agent.DefaultHyperparameters()
	h.Alpha = 0.1
	h.Gamma = 0.9
	h.Epsilon = 0

	q := tabular.NewQTable()
	ag, err := New(q, h, 1)
	require.NoError(t, err)

	s0 := grid.Coordinate{Row: 0, Col: 0}
	s1 := grid.Coordinate{Row: 0, Col: 1}
	q.Update(s1, grid.Down, 2.0)

	update := ag.Learn(timestep.Transition{
		State:     s0,
		Action:    grid.Up,
		Reward:    0.5,
		NextState: s1,
		Done:      false,
	})
	assert.InDelta(t, 0.5+0.9*2.0, update.Target, 1e-12)
}
