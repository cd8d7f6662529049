package grid

// CellKind identifies the static kind of a grid cell. A position
// carries at most one kind; coin collection is per-episode state owned
// by the environment, not by the Layout.
type CellKind int

const (
	Empty CellKind = iota
	Wall
	Goal
	Loss
	Coin
	PortalEntry
	PortalExit
)

func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Goal:
		return "goal"
	case Loss:
		return "loss"
	case Coin:
		return "coin"
	case PortalEntry:
		return "portal entry"
	case PortalExit:
		return "portal exit"
	}
	return "invalid"
}

// Layout is the immutable description of a grid: dimensions, start and
// goal coordinates, loss squares, walls, coins, and portals. A Layout
// is validated once at construction and shared across episodes.
type Layout struct {
	rows, cols int
	start      Coordinate
	goal       Coordinate
	loss       map[Coordinate]bool
	walls      map[Coordinate]bool
	coins      map[Coordinate]bool
	portals    map[Coordinate]Coordinate // entry -> exit
	exits      map[Coordinate]Coordinate // exit -> entry
	wrap       bool
}

// NewLayout validates and builds a Layout. Feature coordinate sets must
// be in bounds and pairwise disjoint; portal entries and exits must be
// distinct coordinates that are not walls. With wrap enabled, moves off
// one edge of the grid re-enter on the opposite edge.
func NewLayout(rows, cols int, start, goal Coordinate, loss, walls, coins []Coordinate,
	portals map[Coordinate]Coordinate, wrap bool) (*Layout, error) {
	if rows <= 0 || cols <= 0 {
		return nil, configErrorf("dimensions must be positive, got %dx%d", rows, cols)
	}

	l := &Layout{
		rows:    rows,
		cols:    cols,
		start:   start,
		goal:    goal,
		loss:    toSet(loss),
		walls:   toSet(walls),
		coins:   toSet(coins),
		portals: make(map[Coordinate]Coordinate, len(portals)),
		exits:   make(map[Coordinate]Coordinate, len(portals)),
		wrap:    wrap,
	}

	for entry, exit := range portals {
		if entry == exit {
			return nil, configErrorf("portal entry %v maps to itself", entry)
		}
		if _, dup := l.exits[exit]; dup {
			return nil, configErrorf("portal exit %v used by more than one entry", exit)
		}
		l.portals[entry] = exit
		l.exits[exit] = entry
	}

	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func toSet(cs []Coordinate) map[Coordinate]bool {
	set := make(map[Coordinate]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}

func (l *Layout) validate() error {
	features := []struct {
		name   string
		coords map[Coordinate]bool
	}{
		{"start", map[Coordinate]bool{l.start: true}},
		{"goal", map[Coordinate]bool{l.goal: true}},
		{"loss", l.loss},
		{"wall", l.walls},
		{"coin", l.coins},
		{"portal entry", keySet(l.portals)},
		{"portal exit", keySet(l.exits)},
	}

	seen := make(map[Coordinate]string)
	for _, f := range features {
		for c := range f.coords {
			if !l.InBounds(c) {
				return configErrorf("%s coordinate %v out of bounds for %dx%d grid",
					f.name, c, l.rows, l.cols)
			}
			if prev, ok := seen[c]; ok {
				return configErrorf("%s coordinate %v overlaps %s", f.name, c, prev)
			}
			seen[c] = f.name
		}
	}
	return nil
}

func keySet(m map[Coordinate]Coordinate) map[Coordinate]bool {
	set := make(map[Coordinate]bool, len(m))
	for c := range m {
		set[c] = true
	}
	return set
}

// Rows returns the number of rows in the grid.
func (l *Layout) Rows() int { return l.rows }

// Cols returns the number of columns in the grid.
func (l *Layout) Cols() int { return l.cols }

// Start returns the episode start coordinate.
func (l *Layout) Start() Coordinate { return l.start }

// Goal returns the goal coordinate.
func (l *Layout) Goal() Coordinate { return l.goal }

// Wrap reports whether moves across the grid boundary wrap to the
// opposite edge instead of being rejected.
func (l *Layout) Wrap() bool { return l.wrap }

// InBounds reports whether c lies within the grid.
func (l *Layout) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < l.rows && c.Col >= 0 && c.Col < l.cols
}

// WrapCoordinate maps an out-of-bounds coordinate onto the grid by
// modular arithmetic. In-bounds coordinates are returned unchanged.
func (l *Layout) WrapCoordinate(c Coordinate) Coordinate {
	row := ((c.Row % l.rows) + l.rows) % l.rows
	col := ((c.Col % l.cols) + l.cols) % l.cols
	return Coordinate{Row: row, Col: col}
}

// KindAt returns the static kind of the cell at c. Out-of-bounds
// coordinates report Empty; bounds are the environment's concern.
func (l *Layout) KindAt(c Coordinate) CellKind {
	switch {
	case l.walls[c]:
		return Wall
	case c == l.goal:
		return Goal
	case l.loss[c]:
		return Loss
	case l.coins[c]:
		return Coin
	default:
		if _, ok := l.portals[c]; ok {
			return PortalEntry
		}
		if _, ok := l.exits[c]; ok {
			return PortalExit
		}
		return Empty
	}
}

// PortalExitFor returns the exit mapped to a portal entry.
func (l *Layout) PortalExitFor(entry Coordinate) (Coordinate, bool) {
	exit, ok := l.portals[entry]
	return exit, ok
}

// Coins returns a copy of the coin coordinate set.
func (l *Layout) Coins() []Coordinate {
	coins := make([]Coordinate, 0, len(l.coins))
	for c := range l.coins {
		coins = append(coins, c)
	}
	return coins
}

// NumStates is the size of the discrete state space: one state per
// grid cell.
func (l *Layout) NumStates() int { return l.rows * l.cols }

// StateIndex flattens a coordinate to a dense state index in
// [0, NumStates).
func (l *Layout) StateIndex(c Coordinate) int {
	return c.Row*l.cols + c.Col
}
