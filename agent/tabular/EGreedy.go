package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gridrl/grid"
	"gridrl/utils/floatutils"
)

// EGreedy selects actions e-greedily over a Table: with probability
// epsilon an action is drawn uniformly from the full action space,
// otherwise uniformly from the actions attaining the maximum value.
// Ties among maxima are broken at random, never by index, so no
// direction is systematically preferred.
//
// All randomness flows through the explicitly seeded source given at
// construction, making runs reproducible.
type EGreedy struct {
	table   Table
	epsilon float64
	decay   float64
	step    float64
	floor   float64
	src     rand.Source
}

// NewEGreedy constructs the selection rule. decay is the multiplicative
// per-episode factor; a positive step switches to subtractive decay.
// Epsilon never drops below floor.
func NewEGreedy(table Table, epsilon, decay, step, floor float64, seed uint64) (*EGreedy, error) {
	if table == nil {
		return nil, fmt.Errorf("egreedy: nil table")
	}
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("egreedy: epsilon %v not in [0, 1]", epsilon)
	}
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("egreedy: decay %v not in (0, 1]", decay)
	}
	if step < 0 {
		return nil, fmt.Errorf("egreedy: negative decay step %v", step)
	}
	if floor < 0 || floor > 1 {
		return nil, fmt.Errorf("egreedy: epsilon floor %v not in [0, 1]", floor)
	}

	return &EGreedy{
		table:   table,
		epsilon: epsilon,
		decay:   decay,
		step:    step,
		floor:   floor,
		src:     rand.NewSource(seed),
	}, nil
}

// SelectAction samples an action for state from the e-greedy
// distribution over the table's current estimates.
func (p *EGreedy) SelectAction(state grid.Coordinate) grid.Action {
	actions := grid.Actions()

	// Every action carries the uniform exploration mass; the greedy
	// mass is spread evenly over the maximizers so ties break at
	// random.
	probs := make([]float64, len(actions))
	for i := range probs {
		probs[i] = p.epsilon / float64(len(actions))
	}
	best := p.table.BestActions(state)
	for _, a := range best {
		probs[int(a)] += (1.0 - p.epsilon) / float64(len(best))
	}

	dist := distuv.NewCategorical(probs, p.src)
	return actions[int(dist.Rand())]
}

// Probabilities returns the selection probability of every action in
// state under the current epsilon, in grid.Actions() order. Expected
// SARSA bootstraps from this distribution.
func (p *EGreedy) Probabilities(state grid.Coordinate) []float64 {
	actions := grid.Actions()
	probs := make([]float64, len(actions))
	for i := range probs {
		probs[i] = p.epsilon / float64(len(actions))
	}
	best := p.table.BestActions(state)
	for _, a := range best {
		probs[int(a)] += (1.0 - p.epsilon) / float64(len(best))
	}
	return probs
}

// Epsilon returns the current exploration rate.
func (p *EGreedy) Epsilon() float64 { return p.epsilon }

// Table returns the store the policy selects over.
func (p *EGreedy) Table() Table { return p.table }

// Source exposes the policy's random source so an agent needing extra
// draws shares the single seeded stream.
func (p *EGreedy) Source() rand.Source { return p.src }

// Decay lowers epsilon by the configured schedule, clipped at the
// floor. Decay is monotonically non-increasing.
func (p *EGreedy) Decay() {
	next := p.epsilon * p.decay
	if p.step > 0 {
		next = p.epsilon - p.step
	}
	p.epsilon = floatutils.Max(p.floor, next)
}
