package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutRejectsBadConfigurations(t *testing.T) {
	start := Coordinate{Row: 0, Col: 0}
	goal := Coordinate{Row: 3, Col: 3}

	tests := []struct {
		name    string
		rows    int
		cols    int
		start   Coordinate
		goal    Coordinate
		loss    []Coordinate
		walls   []Coordinate
		coins   []Coordinate
		portals map[Coordinate]Coordinate
	}{
		{name: "zero rows", rows: 0, cols: 4, start: start, goal: goal},
		{name: "negative cols", rows: 4, cols: -1, start: start, goal: goal},
		{name: "start out of bounds", rows: 4, cols: 4,
			start: Coordinate{Row: 4, Col: 0}, goal: goal},
		{name: "goal out of bounds", rows: 4, cols: 4, start: start,
			goal: Coordinate{Row: 0, Col: 9}},
		{name: "goal on start", rows: 4, cols: 4, start: start, goal: start},
		{name: "wall on goal", rows: 4, cols: 4, start: start, goal: goal,
			walls: []Coordinate{goal}},
		{name: "coin on loss", rows: 4, cols: 4, start: start, goal: goal,
			loss:  []Coordinate{{Row: 1, Col: 1}},
			coins: []Coordinate{{Row: 1, Col: 1}}},
		{name: "wall out of bounds", rows: 4, cols: 4, start: start, goal: goal,
			walls: []Coordinate{{Row: -1, Col: 0}}},
		{name: "portal entry maps to itself", rows: 4, cols: 4, start: start,
			goal: goal,
			portals: map[Coordinate]Coordinate{
				{Row: 1, Col: 1}: {Row: 1, Col: 1},
			}},
		{name: "portal exit on wall", rows: 4, cols: 4, start: start, goal: goal,
			walls: []Coordinate{{Row: 2, Col: 2}},
			portals: map[Coordinate]Coordinate{
				{Row: 1, Col: 1}: {Row: 2, Col: 2},
			}},
		{name: "portal entry on coin", rows: 4, cols: 4, start: start, goal: goal,
			coins: []Coordinate{{Row: 1, Col: 1}},
			portals: map[Coordinate]Coordinate{
				{Row: 1, Col: 1}: {Row: 2, Col: 2},
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.rows, tt.cols, tt.start, tt.goal,
				tt.loss, tt.walls, tt.coins, tt.portals, false)
			require.Error(t, err)

			var confErr *ConfigurationError
			assert.True(t, errors.As(err, &confErr),
				"want ConfigurationError, got %T", err)
		})
	}
}

func TestLayoutKindAt(t *testing.T) {
	l, err := NewLayout(4, 4,
		Coordinate{Row: 0, Col: 0}, Coordinate{Row: 3, Col: 3},
		[]Coordinate{{Row: 3, Col: 0}},
		[]Coordinate{{Row: 1, Col: 1}},
		[]Coordinate{{Row: 0, Col: 3}},
		map[Coordinate]Coordinate{{Row: 2, Col: 0}: {Row: 2, Col: 3}},
		false)
	require.NoError(t, err)

	assert.Equal(t, Goal, l.KindAt(Coordinate{Row: 3, Col: 3}))
	assert.Equal(t, Loss, l.KindAt(Coordinate{Row: 3, Col: 0}))
	assert.Equal(t, Wall, l.KindAt(Coordinate{Row: 1, Col: 1}))
	assert.Equal(t, Coin, l.KindAt(Coordinate{Row: 0, Col: 3}))
	assert.Equal(t, PortalEntry, l.KindAt(Coordinate{Row: 2, Col: 0}))
	assert.Equal(t, PortalExit, l.KindAt(Coordinate{Row: 2, Col: 3}))
	assert.Equal(t, Empty, l.KindAt(Coordinate{Row: 0, Col: 1}))

	exit, ok := l.PortalExitFor(Coordinate{Row: 2, Col: 0})
	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 2, Col: 3}, exit)

	_, ok = l.PortalExitFor(Coordinate{Row: 2, Col: 3})
	assert.False(t, ok, "an exit is not an entry")
}

func TestLayoutDuplicatePortalExit(t *testing.T) {
	_, err := NewLayout(4, 4,
		Coordinate{Row: 0, Col: 0}, Coordinate{Row: 3, Col: 3},
		nil, nil, nil,
		map[Coordinate]Coordinate{
			{Row: 1, Col: 0}: {Row: 2, Col: 2},
			{Row: 1, Col: 1}: {Row: 2, Col: 2},
		}, false)
	require.Error(t, err)
}

func TestLayoutWrapCoordinate(t *testing.T) {
	l, err := NewLayout(3, 5,
		Coordinate{Row: 0, Col: 0}, Coordinate{Row: 2, Col: 4},
		nil, nil, nil, nil, true)
	require.NoError(t, err)

	tests := []struct {
		in   Coordinate
		want Coordinate
	}{
		{Coordinate{Row: -1, Col: 0}, Coordinate{Row: 2, Col: 0}},
		{Coordinate{Row: 3, Col: 2}, Coordinate{Row: 0, Col: 2}},
		{Coordinate{Row: 1, Col: -1}, Coordinate{Row: 1, Col: 4}},
		{Coordinate{Row: 1, Col: 5}, Coordinate{Row: 1, Col: 0}},
		{Coordinate{Row: 1, Col: 2}, Coordinate{Row: 1, Col: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.WrapCoordinate(tt.in), "wrap %v", tt.in)
	}
}

func TestLayoutStateIndex(t *testing.T) {
	l, err := NewLayout(3, 5,
		Coordinate{Row: 0, Col: 0}, Coordinate{Row: 2, Col: 4},
		nil, nil, nil, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 15, l.NumStates())
	assert.Equal(t, 0, l.StateIndex(Coordinate{Row: 0, Col: 0}))
	assert.Equal(t, 7, l.StateIndex(Coordinate{Row: 1, Col: 2}))
	assert.Equal(t, 14, l.StateIndex(Coordinate{Row: 2, Col: 4}))
}
