// Package experiment runs agents against environments and records
// what happens, episode by episode.
package experiment

import (
	"iter"
	"math"
	"time"

	"github.com/google/uuid"

	"gridrl/agent"
	"gridrl/environment"
	"gridrl/experiment/tracker"
	"gridrl/timestep"
	"gridrl/utils/progressbar"
)

// EpisodeSummary records the outcome of a single episode.
type EpisodeSummary struct {
	Episode int
	Steps   int
	Return  float64
	Reason  timestep.EndReason
	Epsilon float64 // NaN when the agent exposes no exploration rate
}

// RunEpisode runs one episode to completion: Reset, then repeated
// SelectAction, Step, Learn until the environment reports a last
// timestep. maxSteps > 0 additionally caps the number of loop steps;
// an episode cut by that cap reports EndTruncated, just like an
// environment budget truncation. Every timestep is shown to every
// tracker. The agent's EndEpisode is NOT called; that is the Loop's
// job.
func RunEpisode(env environment.Environment, ag agent.Agent, maxSteps int,
	trackers ...tracker.Tracker) (EpisodeSummary, error) {
	step := env.Reset()
	track(trackers, step)

	summary := EpisodeSummary{Epsilon: math.NaN()}
	for !step.Last() {
		if maxSteps > 0 && summary.Steps >= maxSteps {
			break
		}

		action := ag.SelectAction(step)
		next, err := env.Step(action)
		if err != nil {
			return EpisodeSummary{}, err
		}
		track(trackers, next)

		ag.Learn(timestep.Transition{
			State:     step.Observation,
			Action:    action,
			Reward:    next.Reward,
			NextState: next.Observation,
			Done:      next.Last(),
		})

		summary.Steps++
		summary.Return += next.Reward
		step = next
	}

	summary.Reason = step.End
	if !step.Last() {
		// Cut by the loop-level cap before the environment ended the
		// episode.
		summary.Reason = timestep.EndTruncated
	}
	if e, ok := ag.(agent.Explorer); ok {
		summary.Epsilon = e.Epsilon()
	}
	return summary, nil
}

func track(trackers []tracker.Tracker, step timestep.TimeStep) {
	for _, t := range trackers {
		t.Track(step)
	}
}

// Loop trains an agent on an environment for a fixed number of
// episodes.
type Loop struct {
	env      environment.Environment
	agent    agent.Agent
	episodes int
	maxSteps int
	trackers []tracker.Tracker
	progress bool
	runID    uuid.UUID
	err      error
}

// New creates a training loop running the agent for episodes episodes,
// each capped at maxSteps loop steps when maxSteps > 0. The trackers
// are shown every timestep of the run.
func New(env environment.Environment, ag agent.Agent, episodes, maxSteps int,
	trackers ...tracker.Tracker) *Loop {
	return &Loop{
		env:      env,
		agent:    ag,
		episodes: episodes,
		maxSteps: maxSteps,
		trackers: trackers,
		runID:    uuid.New(),
	}
}

// RunID identifies this loop across logs and saved artifacts.
func (l *Loop) RunID() uuid.UUID { return l.runID }

// Register adds a tracker to the (possibly already running) loop.
func (l *Loop) Register(t tracker.Tracker) {
	l.trackers = append(l.trackers, t)
}

// ShowProgress enables the terminal progress bar during Run.
func (l *Loop) ShowProgress() { l.progress = true }

// Episodes returns a lazy sequence of episode summaries. Iteration may
// stop early; a fresh call starts episode numbering from zero again but
// the agent keeps whatever it has learned.
func (l *Loop) Episodes() iter.Seq[EpisodeSummary] {
	return func(yield func(EpisodeSummary) bool) {
		var bar *progressbar.ProgressBar
		if l.progress {
			bar = progressbar.New(50, l.episodes, time.Second, true)
			bar.Display()
			defer bar.Close()
		}

		for i := 0; i < l.episodes; i++ {
			summary, err := RunEpisode(l.env, l.agent, l.maxSteps, l.trackers...)
			if err != nil {
				l.err = err
				return
			}
			summary.Episode = i
			l.agent.EndEpisode()

			if bar != nil {
				bar.Increment()
			}
			if !yield(summary) {
				return
			}
		}
	}
}

// Run runs every episode and returns the per-episode summaries.
func (l *Loop) Run() ([]EpisodeSummary, error) {
	summaries := make([]EpisodeSummary, 0, l.episodes)
	for s := range l.Episodes() {
		summaries = append(summaries, s)
	}
	return summaries, l.err
}

// Err reports the first error a lazy iteration stopped on, if any.
func (l *Loop) Err() error { return l.err }

// Save persists the data cached by every registered tracker.
func (l *Loop) Save() error {
	for _, t := range l.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}
