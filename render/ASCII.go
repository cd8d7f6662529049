// Package render draws grid layouts as boxed terminal text or as
// raster images.
package render

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"gridrl/environment"
	"gridrl/grid"
)

// coinCollector is satisfied by environments that track which coins
// the agent has already picked up during the episode.
type coinCollector interface {
	Collected(grid.Coordinate) bool
}

// ASCII renders an environment as a boxed unicode grid with the agent
// drawn at its current position. Cells are three characters wide, so
// layouts beyond single-digit indices render with ragged index gutters.
type ASCII struct {
	au aurora.Aurora
}

// NewASCII creates an ASCII renderer. colors toggles ANSI color output;
// disable it when writing to files or dumb terminals.
func NewASCII(colors bool) *ASCII {
	return &ASCII{au: aurora.NewAurora(colors)}
}

// Render draws the environment. Row indices run down the left gutter
// and column indices sit below the bottom border. Collected coins
// render as empty cells.
func (r *ASCII) Render(env environment.Environment) string {
	layout := env.Layout()
	rows, cols := layout.Rows(), layout.Cols()
	collector, _ := env.(coinCollector)

	var b strings.Builder
	b.WriteString("   ┌" + strings.Repeat("───┬", cols-1) + "───┐")

	for row := 0; row < rows; row++ {
		fmt.Fprintf(&b, "\n %d │", row)
		for col := 0; col < cols; col++ {
			c := grid.Coordinate{Row: row, Col: col}
			fmt.Fprintf(&b, " %s │", r.glyph(c, env, collector))
		}
		if row != rows-1 {
			b.WriteString("\n   ├" + strings.Repeat("───┼", cols-1) + "───┤")
		}
	}

	b.WriteString("\n   └" + strings.Repeat("───┴", cols-1) + "───┘")
	b.WriteString("\n   ")
	for col := 0; col < cols; col++ {
		fmt.Fprintf(&b, "  %d ", col)
	}
	return b.String()
}

func (r *ASCII) glyph(c grid.Coordinate, env environment.Environment,
	collector coinCollector) string {
	if c == env.Position() {
		return r.au.Yellow("A").String()
	}

	switch env.Layout().KindAt(c) {
	case grid.Goal:
		return r.au.Green("◉").String()
	case grid.Loss:
		return r.au.Red("◎").String()
	case grid.Wall:
		return "╳"
	case grid.Coin:
		if collector != nil && collector.Collected(c) {
			return " "
		}
		return r.au.Cyan("$").String()
	case grid.PortalEntry:
		return r.au.Magenta("░").String()
	case grid.PortalExit:
		return r.au.Magenta("▒").String()
	}
	return " "
}
