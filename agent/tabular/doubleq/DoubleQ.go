// Package doubleq implements Double Q-Learning (van Hasselt 2010),
// which decouples action selection from action evaluation across two
// tables to remove Q-Learning's maximization bias.
package doubleq

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/grid"
	"gridrl/timestep"
	"gridrl/utils/floatutils"
)

// DoubleQ maintains two independent estimates Qa and Qb. Each update
// flips a fair coin: the chosen table supplies the argmax at the next
// state and receives the update, while the other table evaluates that
// action. Behaviour is e-greedy over Qa + Qb.
type DoubleQ struct {
	qa     tabular.Table
	qb     tabular.Table
	policy *tabular.EGreedy
	alpha  float64
	gamma  float64
	rng    *rand.Rand
}

// New creates a Double Q-Learning agent over the two tables.
func New(qa, qb tabular.Table, h agent.Hyperparameters, seed uint64) (*DoubleQ, error) {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return nil, fmt.Errorf("learning rate %v not in (0, 1]", h.Alpha)
	}
	if h.Gamma < 0 || h.Gamma >= 1 {
		return nil, fmt.Errorf("discount factor %v not in [0, 1)", h.Gamma)
	}

	combined := &sumTable{qa: qa, qb: qb}
	policy, err := tabular.NewEGreedy(combined, h.Epsilon, h.EpsilonDecay,
		h.EpsilonStep, h.EpsilonMin, seed)
	if err != nil {
		return nil, err
	}

	return &DoubleQ{
		qa:     qa,
		qb:     qb,
		policy: policy,
		alpha:  h.Alpha,
		gamma:  h.Gamma,
		rng:    rand.New(policy.Source()),
	}, nil
}

// SelectAction chooses e-greedily over the summed estimates.
func (d *DoubleQ) SelectAction(t timestep.TimeStep) grid.Action {
	return d.policy.SelectAction(t.Observation)
}

// Learn flips a fair coin and applies
//
//	Qa(s, a) <- Qa(s, a) + alpha * (r + gamma * Qb(s', argmax Qa(s', .)) - Qa(s, a))
//
// or the mirrored update of Qb. Terminal transitions use target = r.
func (d *DoubleQ) Learn(tr timestep.Transition) agent.Update {
	update, evaluate := d.qa, d.qb
	if d.rng.Intn(2) == 1 {
		update, evaluate = d.qb, d.qa
	}

	old := update.Value(tr.State, tr.Action)

	target := tr.Reward
	if !tr.Done {
		best := update.BestActions(tr.NextState)
		chosen := best[d.rng.Intn(len(best))]
		target += d.gamma * evaluate.Value(tr.NextState, chosen)
	}

	tdError := target - old
	updated := old + d.alpha*tdError
	update.Update(tr.State, tr.Action, updated)

	return agent.Update{Old: old, New: updated, Target: target, TDError: tdError}
}

// EndEpisode decays the exploration rate.
func (d *DoubleQ) EndEpisode() {
	d.policy.Decay()
}

// Epsilon returns the current exploration rate.
func (d *DoubleQ) Epsilon() float64 { return d.policy.Epsilon() }

// Tables returns both action-value stores.
func (d *DoubleQ) Tables() (tabular.Table, tabular.Table) { return d.qa, d.qb }

// sumTable is the read-only Qa + Qb view the behaviour policy selects
// over. It is never written to; updates go to the individual tables.
type sumTable struct {
	qa tabular.Table
	qb tabular.Table
}

func (s *sumTable) Value(state grid.Coordinate, action grid.Action) float64 {
	return s.qa.Value(state, action) + s.qb.Value(state, action)
}

func (s *sumTable) Update(grid.Coordinate, grid.Action, float64) {
	panic("doubleq: the combined view is read-only")
}

func (s *sumTable) BestActions(state grid.Coordinate) []grid.Action {
	actions := grid.Actions()
	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = s.Value(state, a)
	}

	_, indices := floatutils.MaxSlice(values)
	best := make([]grid.Action, len(indices))
	for i, idx := range indices {
		best[i] = actions[idx]
	}
	return best
}

func (s *sumTable) MaxValue(state grid.Coordinate) float64 {
	actions := grid.Actions()
	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = s.Value(state, a)
	}
	return floatutils.Max(values...)
}

func (s *sumTable) Snapshot() map[string]float64 {
	out := s.qa.Snapshot()
	for key, value := range s.qb.Snapshot() {
		out[key] += value
	}
	return out
}
