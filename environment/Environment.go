// Package environment outlines the interfaces and errors needed to implement
// concrete environments
package environment

import (
	"gridrl/grid"
	"gridrl/timestep"
)

// Environment implements a simulated environment. The environment is
// the sole authority on move legality and reward; agents never mutate
// environment state directly.
type Environment interface {
	// Reset reinitializes per-episode state and returns the first
	// timestep of a fresh episode. Each call discards all state from
	// the previous episode.
	Reset() timestep.TimeStep

	// Step applies an action and returns the resulting timestep. It
	// fails with an *InvalidStateError when called before Reset, or
	// after a terminal timestep without an intervening Reset.
	Step(a grid.Action) (timestep.TimeStep, error)

	// Layout exposes the static grid description, sufficient to drive
	// rendering without exposing mutation.
	Layout() *grid.Layout

	// Position is the agent's current coordinate.
	Position() grid.Coordinate
}
