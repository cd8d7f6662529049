// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gridrl/grid"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndReason records why an episode ended. Exhausting the step budget is
// a truncation, distinct from reaching a true terminal cell.
type EndReason int

const (
	EndNone EndReason = iota
	EndGoal
	EndLoss
	EndTruncated
)

func (r EndReason) String() string {
	switch r {
	case EndGoal:
		return "goal"
	case EndLoss:
		return "loss"
	case EndTruncated:
		return "truncated"
	}
	return "none"
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation grid.Coordinate
	Number      int
	End         EndReason
	Event       string
}

func New(t StepType, r, d float64, o grid.Coordinate, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  State: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Observation, t.Number)
}

// Transition is the (state, action, reward, next state, done) record
// produced once per step and consumed immediately by the learning
// update. Transitions are not retained.
type Transition struct {
	State     grid.Coordinate
	Action    grid.Action
	Reward    float64
	NextState grid.Coordinate
	Done      bool
}
