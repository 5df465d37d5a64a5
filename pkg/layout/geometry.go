package layout

import "math"

// Point is a 2D point in database units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pair returns the point as an [x, y] pair.
func (p Point) Pair() [2]float64 {
	return [2]float64{p.X, p.Y}
}

// Edge is a directed segment between two points.
type Edge struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Box is an axis-aligned rectangle. The zero Box with Empty set is the
// bounding box of nothing.
type Box struct {
	Min   Point `json:"min"`
	Max   Point `json:"max"`
	Empty bool  `json:"empty,omitempty"`
}

// EmptyBox returns a box that acts as the identity for Extend.
func EmptyBox() Box {
	return Box{Empty: true}
}

// BoxOf returns the box spanned by two corner points in any order.
func BoxOf(a, b Point) Box {
	return Box{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Point) Box {
	if b.Empty {
		return Box{Min: p, Max: p}
	}
	return Box{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if o.Empty {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}
