// Package sarsa implements the SARSA algorithm (Rummery & Niranjan
// 1994): on-policy TD(0) control bootstrapping from the action the
// behaviour policy will actually take next.
package sarsa

import (
	"fmt"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/grid"
	"gridrl/timestep"
)

// SARSA learns Q(s, a) from the quintuple (s, a, r, s', a'). The next
// action a' is pre-selected during Learn and then replayed by the
// following SelectAction, keeping the bootstrap and the behaviour
// consistent within an episode.
type SARSA struct {
	table  tabular.Table
	policy *tabular.EGreedy
	alpha  float64
	gamma  float64
	next   *grid.Action
}

// New creates a SARSA agent learning into table.
func New(table tabular.Table, h agent.Hyperparameters, seed uint64) (*SARSA, error) {
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

	return &SARSA{
		table:  table,
		policy: policy,
		alpha:  h.Alpha,
		gamma:  h.Gamma,
	}, nil
}

// SelectAction replays the action pre-selected by the previous Learn
// when one is cached, and draws from the e-greedy policy otherwise.
func (s *SARSA) SelectAction(t timestep.TimeStep) grid.Action {
	if s.next != nil {
		a := *s.next
		s.next = nil
		return a
	}
	return s.policy.SelectAction(t.Observation)
}

// Learn applies the on-policy update
//
//	Q(s, a) <- Q(s, a) + alpha * (r + gamma * Q(s', a') - Q(s, a))
//
// selecting a' with the behaviour policy and caching it for the next
// SelectAction. Terminal transitions use target = r.
func (s *SARSA) Learn(tr timestep.Transition) agent.Update {
	old := s.table.Value(tr.State, tr.Action)

	target := tr.Reward
	if !tr.Done {
		next := s.policy.SelectAction(tr.NextState)
		s.next = &next
		target += s.gamma * s.table.Value(tr.NextState, next)
	}

	tdError := target - old
	updated := old + s.alpha*tdError
	s.table.Update(tr.State, tr.Action, updated)

	return agent.Update{Old: old, New: updated, Target: target, TDError: tdError}
}

// EndEpisode drops any cached action and decays the exploration rate.
func (s *SARSA) EndEpisode() {
	s.next = nil
	s.policy.Decay()
}

// Epsilon returns the current exploration rate.
func (s *SARSA) Epsilon() float64 { return s.policy.Epsilon() }

// Table returns the agent's action-value store.
func (s *SARSA) Table() tabular.Table { return s.table }
