package tracker

import (
	"gridrl/timestep"
)

// EpisodeLength tracks the number of steps in each episode of a run.
// Step numbers restart at 0 on every First step, so the Number of an
// episode's Last step is its length.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength creates an EpisodeLength tracker that saves to
// filename.
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length when step ends an episode.
func (e *EpisodeLength) Track(step timestep.TimeStep) {
	if step.Last() {
		e.episodeLengths = append(e.episodeLengths, float64(step.Number))
	}
}

// Data returns the per-episode lengths recorded so far.
func (e *EpisodeLength) Data() []float64 {
	return e.episodeLengths
}

// Save writes the per-episode lengths to disk.
func (e *EpisodeLength) Save() error {
	return save(e.filename, e.episodeLengths)
}
