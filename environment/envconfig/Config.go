// Package envconfig provides a JSON-serializable configuration for
// constructing gridworld environments, along with parsers for the
// coordinate-literal syntax used on the command line.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gridrl/environment/gridworld"
	"gridrl/grid"
)

// Portal is a serializable entry -> exit coordinate pair.
type Portal struct {
	Entry grid.Coordinate `json:"entry"`
	Exit  grid.Coordinate `json:"exit"`
}

// Config describes a gridworld environment. The zero value is not
// usable; NewConfig fills in the defaults of a 4x4 grid with the start
// in the top-left corner and the goal in the bottom-right.
type Config struct {
	Rows      int               `json:"rows"`
	Cols      int               `json:"cols"`
	Start     grid.Coordinate   `json:"start"`
	Goal      grid.Coordinate   `json:"goal"`
	Loss      []grid.Coordinate `json:"loss,omitempty"`
	Walls     []grid.Coordinate `json:"walls,omitempty"`
	Coins     []grid.Coordinate `json:"coins,omitempty"`
	Portals   []Portal          `json:"portals,omitempty"`
	Wrap      bool              `json:"wrap,omitempty"`
	Rewards   gridworld.Rewards `json:"rewards"`
	StepLimit int               `json:"step_limit"`
	Discount  float64           `json:"discount"`
}

// NewConfig returns a default environment configuration.
func NewConfig() Config {
	return Config{
		Rows:      4,
		Cols:      4,
		Start:     grid.Coordinate{Row: 0, Col: 0},
		Goal:      grid.Coordinate{Row: 3, Col: 3},
		Rewards:   gridworld.DefaultRewards(),
		StepLimit: 100,
		Discount:  0.99,
	}
}

// Load reads a JSON configuration from path. Fields absent from the
// file keep the NewConfig defaults.
func Load(path string) (Config, error) {
	c := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read config: %v", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("could not parse config: %v", err)
	}
	return c, nil
}

// Create validates the configuration and builds the environment it
// describes.
func (c Config) Create() (*gridworld.GridWorld, error) {
	portals := make(map[grid.Coordinate]grid.Coordinate, len(c.Portals))
	for _, p := range c.Portals {
		if _, dup := portals[p.Entry]; dup {
			return nil, &grid.ConfigurationError{
				Reason: fmt.Sprintf("duplicate portal entry %v", p.Entry),
			}
		}
		portals[p.Entry] = p.Exit
	}

	layout, err := grid.NewLayout(c.Rows, c.Cols, c.Start, c.Goal,
		c.Loss, c.Walls, c.Coins, portals, c.Wrap)
	if err != nil {
		return nil, err
	}

	return gridworld.New(layout, c.Rewards, c.StepLimit, c.Discount)
}

// ParseCoordinateList parses a semicolon-separated list of "row,col"
// literals, e.g. "1,2;3,0". An empty string yields an empty list.
func ParseCoordinateList(s string) ([]grid.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var coords []grid.Coordinate
	for _, part := range strings.Split(s, ";") {
		c, err := grid.ParseCoordinate(part)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// ParsePortalList parses a semicolon-separated list of portal literals
// of the form "entryRow,entryCol>exitRow,exitCol".
func ParsePortalList(s string) ([]Portal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var portals []Portal
	for _, part := range strings.Split(s, ";") {
		halves := strings.Split(part, ">")
		if len(halves) != 2 {
			return nil, &grid.ConfigurationError{
				Reason: fmt.Sprintf("malformed portal %q: want \"entry>exit\"", part),
			}
		}
		entry, err := grid.ParseCoordinate(halves[0])
		if err != nil {
			return nil, err
		}
		exit, err := grid.ParseCoordinate(halves[1])
		if err != nil {
			return nil, err
		}
		portals = append(portals, Portal{Entry: entry, Exit: exit})
	}
	return portals, nil
}
