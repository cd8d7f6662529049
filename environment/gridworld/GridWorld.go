// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"gridrl/environment"
	"gridrl/grid"
	"gridrl/timestep"
)

// Rewards is the reward policy of a gridworld. Step is applied on every
// accepted move; Collision is the full reward of a rejected move, so
// whether a blocked step still pays the step cost is a configuration
// choice rather than a hardcoded rule.
type Rewards struct {
	Step      float64
	Goal      float64
	Loss      float64
	Coin      float64
	Collision float64
}

// DefaultRewards returns the standard reward policy: goal +1, loss -1,
// coin +0.5, step cost -0.01 applied to rejected moves as well.
func DefaultRewards() Rewards {
	return Rewards{
		Step:      -0.01,
		Goal:      1.0,
		Loss:      -1.0,
		Coin:      0.5,
		Collision: -0.01,
	}
}

// GridWorld is a discrete, deterministic grid environment. The static
// layout is shared across episodes; the agent coordinate, collected
// coins, and step counter are per-episode state created by Reset and
// mutated only by Step.
type GridWorld struct {
	layout    *grid.Layout
	rewards   Rewards
	stepLimit int
	discount  float64

	position  grid.Coordinate
	collected map[grid.Coordinate]bool
	steps     int
	started   bool
	done      bool
}

// New creates a gridworld on the given layout. stepLimit is the episode
// step budget; a non-positive limit disables budget truncation and
// leaves termination to the goal and loss cells (or the caller).
func New(layout *grid.Layout, rewards Rewards, stepLimit int, discount float64) (*GridWorld, error) {
	if layout == nil {
		return nil, &grid.ConfigurationError{Reason: "nil layout"}
	}
	if discount < 0 || discount > 1 {
		return nil, &grid.ConfigurationError{
			Reason: "discount must be in [0, 1]",
		}
	}

	return &GridWorld{
		layout:    layout,
		rewards:   rewards,
		stepLimit: stepLimit,
		discount:  discount,
	}, nil
}

// Reset reinitializes the episode: agent at the start coordinate, no
// coins collected, step counter zeroed. Identical across calls; each
// call yields a fresh episode with no carry-over.
func (g *GridWorld) Reset() timestep.TimeStep {
	g.position = g.layout.Start()
	g.collected = make(map[grid.Coordinate]bool)
	g.steps = 0
	g.started = true
	g.done = false

	return timestep.New(timestep.First, 0, g.discount, g.position, 0)
}

// Step applies an action. A candidate coordinate outside the grid (with
// wrap disabled) or on a wall rejects the move: the agent stays put,
// the step still counts against the budget, and the collision reward is
// paid. Portal entries relocate the agent to their exit atomically
// within the same step; reward and termination are evaluated at the
// final coordinate.
func (g *GridWorld) Step(a grid.Action) (timestep.TimeStep, error) {
	if !g.started {
		return timestep.TimeStep{}, &environment.InvalidStateError{
			Reason: "Step called before Reset",
		}
	}
	if g.done {
		return timestep.TimeStep{}, &environment.InvalidStateError{
			Reason: "Step called after terminal timestep without Reset",
		}
	}

	candidate := g.position.Add(a.Delta())
	collided := false
	event := ""

	if !g.layout.InBounds(candidate) {
		if g.layout.Wrap() {
			candidate = g.layout.WrapCoordinate(candidate)
		} else {
			candidate = g.position
			collided = true
			event = "collided with boundary"
		}
	}
	if !collided && g.layout.KindAt(candidate) == grid.Wall {
		candidate = g.position
		collided = true
		event = "collided with wall"
	}
	if !collided {
		if exit, ok := g.layout.PortalExitFor(candidate); ok {
			candidate = exit
			event = "entered portal to " + exit.String()
		}
	}

	g.position = candidate
	g.steps++

	var reward float64
	end := timestep.EndNone
	if collided {
		reward = g.rewards.Collision
	} else {
		reward = g.rewards.Step
		switch g.layout.KindAt(g.position) {
		case grid.Goal:
			reward += g.rewards.Goal
			end = timestep.EndGoal
			event = "reached goal"
		case grid.Loss:
			reward += g.rewards.Loss
			end = timestep.EndLoss
			event = "reached loss square"
		case grid.Coin:
			if !g.collected[g.position] {
				reward += g.rewards.Coin
				g.collected[g.position] = true
				event = "collected a coin"
			}
		}
	}

	// Budget exhaustion truncates the episode; it never overrides a
	// true terminal reached on the same step.
	if end == timestep.EndNone && g.stepLimit > 0 && g.steps >= g.stepLimit {
		end = timestep.EndTruncated
		event = "step budget exhausted"
	}

	stepType := timestep.Mid
	if end != timestep.EndNone {
		stepType = timestep.Last
		g.done = true
	}

	step := timestep.New(stepType, reward, g.discount, g.position, g.steps)
	step.End = end
	step.Event = event
	return step, nil
}

// Layout returns the static grid description.
func (g *GridWorld) Layout() *grid.Layout { return g.layout }

// Position returns the agent's current coordinate.
func (g *GridWorld) Position() grid.Coordinate { return g.position }

// Rewards returns the environment's reward policy.
func (g *GridWorld) Rewards() Rewards { return g.rewards }

// StepsTaken returns the number of steps taken this episode.
func (g *GridWorld) StepsTaken() int { return g.steps }

// Collected reports whether the coin at c has been collected this
// episode.
func (g *GridWorld) Collected(c grid.Coordinate) bool {
	return g.collected[c]
}

// CollectedCoins returns the coins collected so far this episode.
func (g *GridWorld) CollectedCoins() []grid.Coordinate {
	coins := make([]grid.Coordinate, 0, len(g.collected))
	for c := range g.collected {
		coins = append(coins, c)
	}
	return coins
}
