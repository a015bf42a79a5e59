package card

// GridPlan is the (columns, rows) cell layout chosen for a point count.
type GridPlan struct {
	Columns int
	Rows    int
}

// Capacity returns the number of cells the plan provides.
func (p GridPlan) Capacity() int { return p.Columns * p.Rows }

// gridPlans maps point count to layout. The table encodes a deliberate
// visual-density choice, not a mathematical optimum; counts 5 and 7 leave the
// last row asymmetric on purpose.
var gridPlans = [...]GridPlan{
	1: {1, 1},
	2: {2, 1},
	3: {3, 1},
	4: {2, 2},
	5: {3, 2},
	6: {3, 2},
	7: {4, 2},
	8: {4, 2},
}

// PlanFor returns the grid plan for n points. Counts outside [1,8] are
// clamped to the nearest table entry.
func PlanFor(n int) GridPlan {
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	return gridPlans[n]
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// CellRect returns the rectangle of cell i within area, placed row-major:
// cell i occupies column i mod Columns, row i div Columns. Cells are
// equal-sized with the given gap between them, so cells never overlap.
func (p GridPlan) CellRect(i int, area Rect, gap float64) Rect {
	col := i % p.Columns
	row := i / p.Columns
	w := (area.W - gap*float64(p.Columns-1)) / float64(p.Columns)
	h := (area.H - gap*float64(p.Rows-1)) / float64(p.Rows)
	return Rect{
		X: area.X + float64(col)*(w+gap),
		Y: area.Y + float64(row)*(h+gap),
		W: w,
		H: h,
	}
}
