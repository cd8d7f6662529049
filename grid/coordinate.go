// Package grid describes the static layout of a grid world: coordinates,
// actions, cell kinds, and the immutable Layout shared across episodes.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a (row, column) position in a grid. Coordinates are
// comparable and can be used directly as map keys.
type Coordinate struct {
	Row int
	Col int
}

// Add returns the coordinate displaced by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Key returns the canonical "row,col" encoding used for persisted
// Q-table keys and command-line coordinate literals.
func (c Coordinate) Key() string {
	return strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col)
}

// ParseCoordinate parses a "row,col" literal. Malformed literals are
// configuration errors.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Coordinate{}, &ConfigurationError{
			Reason: fmt.Sprintf("malformed coordinate %q: want \"row,col\"", s),
		}
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coordinate{}, &ConfigurationError{
			Reason: fmt.Sprintf("malformed coordinate %q: %v", s, err),
		}
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coordinate{}, &ConfigurationError{
			Reason: fmt.Sprintf("malformed coordinate %q: %v", s, err),
		}
	}

	return Coordinate{Row: row, Col: col}, nil
}
