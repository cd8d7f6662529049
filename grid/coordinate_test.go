package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want Coordinate
	}{
		{"1,2", Coordinate{Row: 1, Col: 2}},
		{" 3 , 0 ", Coordinate{Row: 3, Col: 0}},
		{"-1,4", Coordinate{Row: -1, Col: 4}},
	}
	for _, tt := range tests {
		got, err := ParseCoordinate(tt.in)
		require.NoError(t, err, "parse %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseCoordinateMalformed(t *testing.T) {
	for _, in := range []string{"", "1", "1,2,3", "a,b", "1;2"} {
		_, err := ParseCoordinate(in)
		require.Error(t, err, "parse %q", in)

		var confErr *ConfigurationError
		assert.True(t, errors.As(err, &confErr), "parse %q: got %T", in, err)
	}
}

func TestCoordinateKeyRoundTrip(t *testing.T) {
	c := Coordinate{Row: 7, Col: 11}
	got, err := ParseCoordinate(c.Key())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestActionDeltas(t *testing.T) {
	pos := Coordinate{Row: 2, Col: 2}
	assert.Equal(t, Coordinate{Row: 1, Col: 2}, pos.Add(Up.Delta()))
	assert.Equal(t, Coordinate{Row: 3, Col: 2}, pos.Add(Down.Delta()))
	assert.Equal(t, Coordinate{Row: 2, Col: 1}, pos.Add(Left.Delta()))
	assert.Equal(t, Coordinate{Row: 2, Col: 3}, pos.Add(Right.Delta()))
}
