package render

import (
	"fmt"

	"github.com/fogleman/gg"

	"gridrl/environment"
	"gridrl/grid"
)

// DefaultCellSize is the pixel edge of one grid cell.
const DefaultCellSize = 64

// PNG renders an environment to a raster image, one filled square per
// cell with the agent drawn as a disc.
type PNG struct {
	cellSize int
}

// NewPNG creates a PNG renderer. cellSize <= 0 selects
// DefaultCellSize.
func NewPNG(cellSize int) *PNG {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &PNG{cellSize: cellSize}
}

// Render draws the environment and writes the image to path. Collected
// coins render as empty cells.
func (r *PNG) Render(env environment.Environment, path string) error {
	layout := env.Layout()
	cell := float64(r.cellSize)
	collector, _ := env.(coinCollector)

	dc := gg.NewContext(layout.Cols()*r.cellSize, layout.Rows()*r.cellSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for row := 0; row < layout.Rows(); row++ {
		for col := 0; col < layout.Cols(); col++ {
			c := grid.Coordinate{Row: row, Col: col}
			x, y := float64(col)*cell, float64(row)*cell

			kind := layout.KindAt(c)
			if kind == grid.Coin && collector != nil && collector.Collected(c) {
				kind = grid.Empty
			}
			r.fillCell(dc, x, y, cell, kind)

			dc.SetRGB(0.75, 0.75, 0.75)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Stroke()
		}
	}

	pos := env.Position()
	dc.SetRGB(0.95, 0.76, 0.06)
	dc.DrawCircle(float64(pos.Col)*cell+cell/2, float64(pos.Row)*cell+cell/2,
		cell/3)
	dc.Fill()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("could not save image: %v", err)
	}
	return nil
}

func (r *PNG) fillCell(dc *gg.Context, x, y, cell float64, kind grid.CellKind) {
	switch kind {
	case grid.Wall:
		dc.SetRGB(0.25, 0.25, 0.25)
	case grid.Goal:
		dc.SetRGB(0.30, 0.69, 0.31)
	case grid.Loss:
		dc.SetRGB(0.90, 0.22, 0.21)
	case grid.Coin:
		dc.SetRGB(0.42, 0.80, 0.89)
	case grid.PortalEntry:
		dc.SetRGB(0.62, 0.42, 0.78)
	case grid.PortalExit:
		dc.SetRGB(0.79, 0.64, 0.89)
	default:
		return
	}
	dc.DrawRectangle(x, y, cell, cell)
	dc.Fill()
}
