package grid

// Action is one of the four unit grid displacements.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the size of the action space.
const NumActions = 4

// Actions returns the full action space in a fixed order.
func Actions() [NumActions]Action {
	return [NumActions]Action{Up, Down, Left, Right}
}

// Delta returns the unit displacement the action applies to a
// coordinate. Row indices grow downward, so Up is (-1, 0).
func (a Action) Delta() Coordinate {
	switch a {
	case Up:
		return Coordinate{Row: -1, Col: 0}
	case Down:
		return Coordinate{Row: 1, Col: 0}
	case Left:
		return Coordinate{Row: 0, Col: -1}
	case Right:
		return Coordinate{Row: 0, Col: 1}
	}
	return Coordinate{}
}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "invalid"
}

// Symbol returns the arrow glyph used when rendering policies.
func (a Action) Symbol() string {
	switch a {
	case Up:
		return "↑"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Right:
		return "→"
	}
	return "?"
}
