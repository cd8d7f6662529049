// Package agent defines the agent interface and the configuration
// registry through which algorithms are selected by name.
package agent

import (
	"gridrl/environment"
	"gridrl/grid"
	"gridrl/timestep"
)

// Agent couples action selection to a learning rule. New algorithms are
// added as new implementations of this interface, not as subclasses of
// an existing agent.
type Agent interface {
	// SelectAction chooses an action for the observed state. Selection
	// is the agent's only source of randomness besides exploration
	// decay.
	SelectAction(t timestep.TimeStep) grid.Action

	// Learn applies the agent's update rule to a single transition and
	// reports the update it performed. The update is deterministic
	// given its inputs for value-based agents; on-policy agents may
	// additionally pre-select their next action here.
	Learn(tr timestep.Transition) Update

	// EndEpisode is called once after each completed episode, never
	// mid-episode. Exploration decay happens here.
	EndEpisode()
}

// Update describes a single value update: the previous estimate, the
// bootstrapped target, the temporal-difference error, and the new
// estimate written back to the table.
type Update struct {
	Old     float64
	New     float64
	Target  float64
	TDError float64
}

// Explorer is implemented by agents whose exploration rate is
// observable, for progress reporting.
type Explorer interface {
	Epsilon() float64
}

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}
