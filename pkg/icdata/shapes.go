package icdata

import "github.com/matzehuels/icview/pkg/layout"

// CellShapes holds the classified shapes of one layer in one cell.
// Pins are box centers as [x, y] pairs; the other lists hold engine shapes.
type CellShapes struct {
	Polygons []layout.Shape
	Paths    []layout.Shape
	Labels   []layout.Shape
	Boxes    []layout.Shape
	Pins     [][2]float64
	Nets     []layout.Shape
}

// IsEmpty reports whether all six lists are empty.
func (c *CellShapes) IsEmpty() bool {
	return len(c.Polygons) == 0 &&
		len(c.Paths) == 0 &&
		len(c.Labels) == 0 &&
		len(c.Boxes) == 0 &&
		len(c.Pins) == 0 &&
		len(c.Nets) == 0
}

// Count returns the total number of entries over all lists.
func (c *CellShapes) Count() int {
	return len(c.Polygons) + len(c.Paths) + len(c.Labels) + len(c.Boxes) + len(c.Pins) + len(c.Nets)
}
