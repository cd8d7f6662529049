// Package qlearning implements the Q-Learning algorithm of Watkins &
// Dayan (1992): off-policy TD(0) control bootstrapping from the
// greedy value of the next state.
package qlearning

import (
	"fmt"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/grid"
	"gridrl/timestep"
)

// QLearning couples an e-greedy behaviour policy to a shared
// action-value table and applies the Q-Learning update rule.
type QLearning struct {
	table  tabular.Table
	policy *tabular.EGreedy
	alpha  float64
	gamma  float64
}

// New creates a Q-Learning agent learning into table.
func New(table tabular.Table, h agent.Hyperparameters, seed uint64) (*QLearning, error) {
	if err := validate(h); err != nil {
		return nil, err
	}

	policy, err := tabular.NewEGreedy(table, h.Epsilon, h.EpsilonDecay,
		h.EpsilonStep, h.EpsilonMin, seed)
	if err != nil {
		return nil, err
	}

	return &QLearning{
		table:  table,
		policy: policy,
		alpha:  h.Alpha,
		gamma:  h.Gamma,
	}, nil
}

func validate(h agent.Hyperparameters) error {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return fmt.Errorf("learning rate %v not in (0, 1]", h.Alpha)
	}
	if h.Gamma < 0 || h.Gamma >= 1 {
		return fmt.Errorf("discount factor %v not in [0, 1)", h.Gamma)
	}
	return nil
}

// SelectAction chooses e-greedily over the current estimates.
func (q *QLearning) SelectAction(t timestep.TimeStep) grid.Action {
	return q.policy.SelectAction(t.Observation)
}

// Learn applies the TD(0) control update
//
//	Q(s, a) <- Q(s, a) + alpha * (target - Q(s, a))
//
// where target = r for terminal transitions, and
// r + gamma * max_a' Q(s', a') otherwise. A terminal transition ignores
// the bootstrap term entirely: there is no future from a terminal
// state.
func (q *QLearning) Learn(tr timestep.Transition) agent.Update {
	old := q.table.Value(tr.State, tr.Action)

	target := tr.Reward
	if !tr.Done {
		target += q.gamma * q.table.MaxValue(tr.NextState)
	}

	tdError := target - old
	updated := old + q.alpha*tdError
	q.table.Update(tr.State, tr.Action, updated)

	return agent.Update{Old: old, New: updated, Target: target, TDError: tdError}
}

// EndEpisode decays the exploration rate.
func (q *QLearning) EndEpisode() {
	q.policy.Decay()
}

// Epsilon returns the current exploration rate.
func (q *QLearning) Epsilon() float64 { return q.policy.Epsilon() }

// Table returns the agent's action-value store.
func (q *QLearning) Table() tabular.Table { return q.table }
