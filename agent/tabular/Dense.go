package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"gridrl/grid"
)

// Bootstrap selects the initial value scheme of a dense table.
type Bootstrap string

const (
	// Zeros starts every estimate at 0: the agent assumes no prior
	// knowledge.
	Zeros Bootstrap = "zeros"

	// Optimistic starts every estimate high so that unvisited pairs
	// keep looking attractive, encouraging systematic exploration.
	Optimistic Bootstrap = "optimistic"

	// Random draws initial estimates uniformly from [-1, 1).
	Random Bootstrap = "random"

	// SmallRandom draws initial estimates uniformly from [-0.1, 0.1).
	SmallRandom Bootstrap = "small-random"
)

const optimisticValue = 1.0

// DenseQTable is an action-value store backed by a gonum matrix with
// one row per grid cell and one column per action. It satisfies the
// same contract as the sparse QTable; the two are interchangeable
// implementation choices. Unlike the sparse table it supports non-zero
// bootstrap schemes, since the finite state space can be filled
// eagerly.
type DenseQTable struct {
	layout *grid.Layout
	values *mat.Dense
}

// NewDense builds a dense table over the layout's state space,
// initialized per the bootstrap method. rng is only consulted by the
// random schemes and may be nil otherwise.
func NewDense(layout *grid.Layout, b Bootstrap, rng *rand.Rand) (*DenseQTable, error) {
	states := layout.NumStates()
	values := mat.NewDense(states, grid.NumActions, nil)

	switch b {
	case Zeros, "":
		// Already zeroed.
	case Optimistic:
		for i := 0; i < states; i++ {
			for j := 0; j < grid.NumActions; j++ {
				values.Set(i, j, optimisticValue)
			}
		}
	case Random, SmallRandom:
		if rng == nil {
			return nil, fmt.Errorf("bootstrap %q needs a random source", b)
		}
		scale := 1.0
		if b == SmallRandom {
			scale = 0.1
		}
		for i := 0; i < states; i++ {
			for j := 0; j < grid.NumActions; j++ {
				values.Set(i, j, scale*(2*rng.Float64()-1))
			}
		}
	default:
		return nil, fmt.Errorf("invalid bootstrap method %q", b)
	}

	return &DenseQTable{layout: layout, values: values}, nil
}

// NewTableFor builds the store matching a bootstrap name: the sparse
// QTable for the zero default, a dense bootstrapped table otherwise.
func NewTableFor(layout *grid.Layout, b Bootstrap, seed uint64) (Table, error) {
	if b == "" || b == Zeros {
		return NewQTable(), nil
	}
	return NewDense(layout, b, rand.New(rand.NewSource(seed)))
}

// Value implements Table.
func (d *DenseQTable) Value(state grid.Coordinate, action grid.Action) float64 {
	return d.values.At(d.layout.StateIndex(state), int(action))
}

// Update implements Table.
func (d *DenseQTable) Update(state grid.Coordinate, action grid.Action, value float64) {
	d.values.Set(d.layout.StateIndex(state), int(action), value)
}

// BestActions implements Table.
func (d *DenseQTable) BestActions(state grid.Coordinate) []grid.Action {
	return bestActions(d, state)
}

// MaxValue implements Table.
func (d *DenseQTable) MaxValue(state grid.Coordinate) float64 {
	return maxValue(d, state)
}

// Snapshot implements Table. Every (state, action) pair is exported,
// including bootstrap-initialized entries that were never updated.
func (d *DenseQTable) Snapshot() map[string]float64 {
	out := make(map[string]float64, d.layout.NumStates()*grid.NumActions)
	for row := 0; row < d.layout.Rows(); row++ {
		for col := 0; col < d.layout.Cols(); col++ {
			state := grid.Coordinate{Row: row, Col: col}
			for _, a := range grid.Actions() {
				out[encodeKey(state, a)] = d.Value(state, a)
			}
		}
	}
	return out
}
