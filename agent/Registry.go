package agent

import (
	"fmt"
	"sort"
)

// Hyperparameters is the common knob set shared by the tabular agents.
// EpsilonDecay is a multiplicative factor applied per episode; when
// EpsilonStep is positive, subtractive decay is used instead.
type Hyperparameters struct {
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonDecay float64
	EpsilonStep  float64
	EpsilonMin   float64
	Bootstrap    string
}

// DefaultHyperparameters mirrors the conventional tabular defaults.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Alpha:        0.1,
		Gamma:        0.99,
		Epsilon:      1.0,
		EpsilonDecay: 0.99,
		EpsilonMin:   0.01,
		Bootstrap:    "zeros",
	}
}

// Registered algorithm names mapped to Config factories. Each algorithm
// package registers itself in its init function to avoid circular
// imports; importing a package for side effects makes its name
// available.
var registered = make(map[string]func(Hyperparameters) Config)

// Register makes an algorithm constructible by name. It panics on
// duplicate registration, which indicates an init-order bug.
func Register(name string, factory func(Hyperparameters) Config) {
	if _, dup := registered[name]; dup {
		panic(fmt.Sprintf("agent: duplicate registration of %q", name))
	}
	registered[name] = factory
}

// NewConfig builds the Config for a registered algorithm name.
func NewConfig(name string, h Hyperparameters) (Config, error) {
	factory, ok := registered[name]
	if !ok {
		return nil, fmt.Errorf("agent: no algorithm registered as %q (have %v)",
			name, Names())
	}
	return factory(h), nil
}

// Names lists the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
