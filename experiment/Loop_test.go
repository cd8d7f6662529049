package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/agent/tabular/qlearning"
	"gridrl/environment/envconfig"
	"gridrl/environment/gridworld"
	"gridrl/experiment/tracker"
	"gridrl/grid"
	"gridrl/timestep"
)

// leftWanderer always walks into the left boundary, so it never
// reaches a terminal cell on its own.
type leftWanderer struct{ episodesEnded int }

func (l *leftWanderer) SelectAction(timestep.TimeStep) grid.Action { return grid.Left }
func (l *leftWanderer) Learn(timestep.Transition) agent.Update     { return agent.Update{} }
func (l *leftWanderer) EndEpisode()                                { l.episodesEnded++ }

func smallWorld(t *testing.T, stepLimit int) *gridworld.GridWorld {
	t.Helper()
	cfg := envconfig.NewConfig()
	cfg.Rows, cfg.Cols = 2, 2
	cfg.Goal = grid.Coordinate{Row: 1, Col: 1}
	cfg.StepLimit = stepLimit
	env, err := cfg.Create()
	require.NoError(t, err)
	return env
}

func learner(t *testing.T, env *gridworld.GridWorld, seed uint64) agent.Agent {
	t.Helper()
	h := agent.DefaultHyperparameters()
	h.Gamma = 0.9
	cfg, err := agent.NewConfig(qlearning.Name, h)
	require.NoError(t, err)
	ag, err := cfg.CreateAgent(env, seed)
	require.NoError(t, err)
	return ag
}

func TestRunEpisodeStopsAtLoopBudget(t *testing.T) {
	env := smallWorld(t, 0)
	ag := &leftWanderer{}

	summary, err := RunEpisode(env, ag, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Steps)
	assert.Equal(t, timestep.EndTruncated, summary.Reason,
		"a loop-level cut is a truncation, never an unnamed outcome")
}

func TestRunEpisodeReportsTruncation(t *testing.T) {
	env := smallWorld(t, 3)
	ag := &leftWanderer{}

	summary, err := RunEpisode(env, ag, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Steps)
	assert.Equal(t, timestep.EndTruncated, summary.Reason)
}

func TestLoopRunsEveryEpisode(t *testing.T) {
	env := smallWorld(t, 20)
	ag := learner(t, env, 7)

	loop := New(env, ag, 10, 0)
	summaries, err := loop.Run()
	require.NoError(t, err)
	require.Len(t, summaries, 10)

	for i, s := range summaries {
		assert.Equal(t, i, s.Episode)
		assert.Greater(t, s.Steps, 0)
		assert.Contains(t,
			[]timestep.EndReason{timestep.EndGoal, timestep.EndTruncated},
			s.Reason)
	}

	// EndEpisode ran between episodes, so epsilon decayed from 1.0.
	last := summaries[len(summaries)-1]
	assert.Less(t, last.Epsilon, 1.0)
}

func TestLoopCallsEndEpisodeAfterEachEpisode(t *testing.T) {
	env := smallWorld(t, 2)
	ag := &leftWanderer{}

	_, err := New(env, ag, 4, 0).Run()
	require.NoError(t, err)
	assert.Equal(t, 4, ag.episodesEnded)
}

func TestLoopFeedsTrackers(t *testing.T) {
	env := smallWorld(t, 2)
	ag := &leftWanderer{}
	returns := tracker.NewReturn("")
	lengths := tracker.NewEpisodeLength("")

	loop := New(env, ag, 3, 0, returns, lengths)
	_, err := loop.Run()
	require.NoError(t, err)

	require.Len(t, returns.Data(), 3)
	require.Len(t, lengths.Data(), 3)
	for i := range returns.Data() {
		// Two collision penalties per truncated episode.
		assert.InDelta(t, 2*gridworld.DefaultRewards().Collision,
			returns.Data()[i], 1e-12)
		assert.InDelta(t, 2, lengths.Data()[i], 1e-12)
	}
}

func TestEpisodesStopsEarlyWithoutRunningAll(t *testing.T) {
	env := smallWorld(t, 2)
	ag := &leftWanderer{}

	loop := New(env, ag, 100, 0)
	got := 0
	for range loop.Episodes() {
		got++
		if got == 3 {
			break
		}
	}
	assert.Equal(t, 3, got)
	assert.NoError(t, loop.Err())
}

func TestSeededLoopsReproduce(t *testing.T) {
	run := func() []EpisodeSummary {
		env := smallWorld(t, 20)
		ag := learner(t, env, 99)
		summaries, err := New(env, ag, 15, 0).Run()
		require.NoError(t, err)
		return summaries
	}
	assert.Equal(t, run(), run())
}

func TestRunParallelSharesOneTable(t *testing.T) {
	shared := tabular.NewSynced(tabular.NewQTable())

	h := agent.DefaultHyperparameters()
	h.Gamma = 0.9

	workers := make([]Worker, 4)
	for i := range workers {
		env := smallWorld(t, 20)
		ag, err := qlearning.New(shared, h, uint64(i+1))
		require.NoError(t, err)
		workers[i] = Worker{Loop: New(env, ag, 25, 0)}
	}

	results, err := RunParallel(workers)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, summaries := range results {
		assert.Len(t, summaries, 25, "worker %d", i)
	}

	// Every worker fed the same table, so the learned estimates are
	// visible through any handle.
	assert.NotEmpty(t, shared.Snapshot())
}
