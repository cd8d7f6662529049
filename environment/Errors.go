package environment

// InvalidStateError reports a caller bug in the agent-environment
// orchestration: Step invoked without a prior Reset, or after a
// terminal timestep without a new Reset. It is never silently
// recovered.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid environment state: " + e.Reason
}
