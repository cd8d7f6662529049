// Package esarsa implements Expected SARSA (van Seijen et al. 2009):
// on-policy TD(0) control bootstrapping from the expected value of the
// next state under the current e-greedy policy.
package esarsa

import (
	"fmt"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/grid"
	"gridrl/timestep"
)

// ESarsa replaces SARSA's sampled next action with the expectation
// over the policy's action distribution, removing the variance that
// sampling a' introduces.
type ESarsa struct {
	table  tabular.Table
	policy *tabular.EGreedy
	alpha  float64
	gamma  float64
}

// New creates an Expected SARSA agent learning into table.
func New(table tabular.Table, h agent.Hyperparameters, seed uint64) (*ESarsa, error) {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return nil, fmt.Errorf("learning rate %v not in (0, 1]", h.Alpha)
	}
	if h.Gamma < 0 || h.Gamma >= 1 {
		return nil, fmt.Errorf("discount factor %v not in [0, 1)", h.Gamma)
	}

	policy, err := tabular.NewEGreedy(table, h.Epsilon, h.EpsilonDecay,
		h.EpsilonStep, h.EpsilonMin, seed)
	if err != nil {
		return nil, err
	}

	return &ESarsa{
		table:  table,
		policy: policy,
		alpha:  h.Alpha,
		gamma:  h.Gamma,
	}, nil
}

// SelectAction chooses e-greedily over the current estimates.
func (e *ESarsa) SelectAction(t timestep.TimeStep) grid.Action {
	return e.policy.SelectAction(t.Observation)
}

// Learn applies the update
//
//	Q(s, a) <- Q(s, a) + alpha * (r + gamma * E_pi[Q(s', .)] - Q(s, a))
//
// where the expectation runs over the e-greedy distribution at s'.
// Terminal transitions use target = r.
func (e *ESarsa) Learn(tr timestep.Transition) agent.Update {
	old := e.table.Value(tr.State, tr.Action)

	target := tr.Reward
	if !tr.Done {
		expected := 0.0
		probs := e.policy.Probabilities(tr.NextState)
		for i, a := range grid.Actions() {
			expected += probs[i] * e.table.Value(tr.NextState, a)
		}
		target += e.gamma * expected
	}

	tdError := target - old
	updated := old + e.alpha*tdError
	e.table.Update(tr.State, tr.Action, updated)

	return agent.Update{Old: old, New: updated, Target: target, TDError: tdError}
}

// EndEpisode decays the exploration rate.
func (e *ESarsa) EndEpisode() {
	e.policy.Decay()
}

// Epsilon returns the current exploration rate.
func (e *ESarsa) Epsilon() float64 { return e.policy.Epsilon() }

// Table returns the agent's action-value store.
func (e *ESarsa) Table() tabular.Table { return e.table }
