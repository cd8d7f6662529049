package qlearning

import (
	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/environment"
)

// Name is the registry token selecting this algorithm.
const Name = "qlearning"

func init() {
	agent.Register(Name, func(h agent.Hyperparameters) agent.Config {
		return Config{Hyperparameters: h}
	})
}

// Config describes a Q-Learning agent.
type Config struct {
	agent.Hyperparameters
}

// Validate implements agent.Config.
func (c Config) Validate() error {
	return validate(c.Hyperparameters)
}

// CreateAgent implements agent.Config.
func (c Config) CreateAgent(env environment.Environment, seed uint64) (agent.Agent, error) {
	table, err := tabular.NewTableFor(env.Layout(), tabular.Bootstrap(c.Bootstrap), seed)
	if err != nil {
		return nil, err
	}
	return New(table, c.Hyperparameters, seed)
}
