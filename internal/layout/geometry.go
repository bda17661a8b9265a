package layout

// Geometry holds the measurements a renderer uses to turn a laid-out
// interval into a box.
type Geometry struct {
	RowHeightPerHour float64
	LabelColumnWidth float64
	ContainerWidth   float64 // width shared by all lanes, labels excluded
	GapPadding       float64
}

// Rect is the box for one interval.
type Rect struct {
	Top    float64
	Height float64
	Left   float64
	Width  float64
}

// Rect positions iv:
//
//	top      = start * rowHeightPerHour
//	height   = (end - start) * rowHeightPerHour
//	colWidth = containerWidth / columnsCount
//	left     = labelColumnWidth + colWidth*column + gapPadding
//	width    = colWidth - gapPadding
func (g Geometry) Rect(iv Interval) Rect {
	count := max(iv.ColumnsCount, 1)
	colWidth := g.ContainerWidth / float64(count)

	return Rect{
		Top:    iv.Start * g.RowHeightPerHour,
		Height: (iv.End - iv.Start) * g.RowHeightPerHour,
		Left:   g.LabelColumnWidth + colWidth*float64(iv.Column) + g.GapPadding,
		Width:  max(colWidth-g.GapPadding, 0),
	}
}

// Rects returns the box of every interval, in order.
func (g Geometry) Rects(laid []Interval) []Rect {
	rects := make([]Rect, len(laid))
	for i, iv := range laid {
		rects[i] = g.Rect(iv)
	}
	return rects
}
