package schedule

import (
	"math"
	"time"
)

// View selects how the calendar grid maps horizontal movement: doctor
// columns in day view, day columns in week view, day cells in month
// view.
type View int

const (
	DayView View = iota
	WeekView
	MonthView
)

// Bounds is the pixel rectangle of the calendar grid.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Geometry is the explicit grid description used to turn pointer
// coordinates into (column, row, time delta) without any rendering
// surface.
type Geometry struct {
	View       View
	Bounds     Bounds
	SlotHeight float64 // pixels per interval row
	Columns    int
	Rows       int // month view only
}

// Valid guards against a zero-sized grid, which would otherwise turn
// every hit test into a division by zero.
func (g Geometry) Valid() bool {
	if g.Bounds.Width <= 0 || g.Bounds.Height <= 0 {
		return false
	}
	if g.Columns <= 0 {
		return false
	}
	if g.View == MonthView && g.Rows <= 0 {
		return false
	}
	return true
}

// SnapDelta quantizes a vertical pixel delta to whole interval slots.
func (g Geometry) SnapDelta(deltaY float64, interval time.Duration) time.Duration {
	if g.SlotHeight <= 0 {
		return 0
	}
	slots := math.Round(deltaY / g.SlotHeight)
	return time.Duration(slots) * interval
}

// ColumnAt hit-tests an x coordinate against the grid columns.
func (g Geometry) ColumnAt(x float64) (int, bool) {
	if !g.Valid() {
		return 0, false
	}
	rel := x - g.Bounds.X
	if rel < 0 || rel >= g.Bounds.Width {
		return 0, false
	}
	col := int(rel / (g.Bounds.Width / float64(g.Columns)))
	if col >= g.Columns {
		col = g.Columns - 1
	}
	return col, true
}

// CellAt hit-tests a point against the month grid, returning the
// (row, col) cell.
func (g Geometry) CellAt(x, y float64) (row, col int, ok bool) {
	col, ok = g.ColumnAt(x)
	if !ok {
		return 0, 0, false
	}
	relY := y - g.Bounds.Y
	if relY < 0 || relY >= g.Bounds.Height {
		return 0, 0, false
	}
	rows := g.Rows
	if rows <= 0 {
		rows = 1
	}
	row = int(relY / (g.Bounds.Height / float64(rows)))
	if row >= rows {
		row = rows - 1
	}
	return row, col, true
}
