package tracker

import (
	"gridrl/timestep"
)

// Return tracks the episodic return of a run. Rewards are accumulated
// across each episode, and the sum is cached when the episode's last
// timestep arrives.
//
// An episode must finish for its return to be recorded: when the run
// stops mid-episode, that episode's partial return is dropped.
type Return struct {
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates a Return tracker that saves to filename.
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track accumulates the reward on step. Episode boundaries are detected
// from the step types: a First step resets the accumulator and a Last
// step caches the accumulated return.
func (r *Return) Track(step timestep.TimeStep) {
	if step.First() {
		r.currentReturn = 0
	}
	r.currentReturn += step.Reward
	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0
	}
}

// Data returns the per-episode returns recorded so far.
func (r *Return) Data() []float64 {
	return r.episodeReturns
}

// Save writes the per-episode returns to disk.
func (r *Return) Save() error {
	return save(r.filename, r.episodeReturns)
}
