package sarsa

import (
	"fmt"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/environment"
)

// Name is the registry token selecting this algorithm.
const Name = "sarsa"

func init() {
	agent.Register(Name, func(h agent.Hyperparameters) agent.Config {
		return Config{Hyperparameters: h}
	})
}

// Config describes a SARSA agent.
type Config struct {
	agent.Hyperparameters
}

// Validate implements agent.Config.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("learning rate %v not in (0, 1]", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("discount factor %v not in [0, 1)", c.Gamma)
	}
	return nil
}

// CreateAgent implements agent.Config.
func (c Config) CreateAgent(env environment.Environment, seed uint64) (agent.Agent, error) {
	table, err := tabular.NewTableFor(env.Layout(), tabular.Bootstrap(c.Bootstrap), seed)
	if err != nil {
		return nil, err
	}
	return New(table, c.Hyperparameters, seed)
}
