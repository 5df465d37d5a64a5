package memdb

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/icview/pkg/layout"
)

// Shape is one geometric object on a layer. Box shapes store their corners
// as two points (min, max); text shapes store their anchor as one point.
type Shape struct {
	kind     layout.Kind
	points   []layout.Point
	holes    [][]layout.Point
	width    float64
	beginExt float64
	endExt   float64
	text     string
}

func (s *Shape) Kind() layout.Kind { return s.kind }

func (s *Shape) IsBox() bool     { return s.kind == layout.KindBox }
func (s *Shape) IsPath() bool    { return s.kind == layout.KindPath }
func (s *Shape) IsPolygon() bool { return s.kind == layout.KindPolygon }
func (s *Shape) IsText() bool    { return s.kind == layout.KindText }

// IsSimplePolygon reports whether the shape is a polygon without holes.
func (s *Shape) IsSimplePolygon() bool {
	return s.kind == layout.KindPolygon && len(s.holes) == 0
}

// =============================================================================
// Box
// =============================================================================

func (s *Shape) BoxCenter() layout.Point { return s.box().Center() }
func (s *Shape) BoxP1() layout.Point     { return s.box().Min }
func (s *Shape) BoxP2() layout.Point     { return s.box().Max }

func (s *Shape) box() layout.Box {
	if s.kind != layout.KindBox || len(s.points) < 2 {
		return layout.Box{}
	}
	return layout.BoxOf(s.points[0], s.points[1])
}

// =============================================================================
// Polygon
// =============================================================================

// HullPoints returns the outer contour. Boxes report their four corners
// counter-clockwise from the lower left.
func (s *Shape) HullPoints() []layout.Point {
	switch s.kind {
	case layout.KindPolygon:
		return clonePoints(s.points)
	case layout.KindBox:
		b := s.box()
		return []layout.Point{
			b.Min,
			{X: b.Max.X, Y: b.Min.Y},
			b.Max,
			{X: b.Min.X, Y: b.Max.Y},
		}
	case layout.KindPath:
		return s.contour()
	}
	return nil
}

func (s *Shape) HolePoints() []layout.Point {
	if len(s.holes) == 0 {
		return nil
	}
	return clonePoints(s.holes[0])
}

func (s *Shape) Holes() [][]layout.Point {
	if len(s.holes) == 0 {
		return nil
	}
	out := make([][]layout.Point, len(s.holes))
	for i, h := range s.holes {
		out[i] = clonePoints(h)
	}
	return out
}

// Edges returns the closed edges of the hull followed by those of each hole.
func (s *Shape) Edges() []layout.Edge {
	var out []layout.Edge
	out = appendRing(out, s.HullPoints())
	for _, h := range s.holes {
		out = appendRing(out, h)
	}
	return out
}

func appendRing(dst []layout.Edge, ring []layout.Point) []layout.Edge {
	if len(ring) < 2 {
		return dst
	}
	for i := range ring {
		dst = append(dst, layout.Edge{P1: ring[i], P2: ring[(i+1)%len(ring)]})
	}
	return dst
}

// Area returns the hull area minus the hole areas.
func (s *Shape) Area() float64 {
	a := ringArea(s.HullPoints())
	for _, h := range s.holes {
		a -= ringArea(h)
	}
	return a
}

// ringArea is the absolute shoelace area of a closed ring.
func ringArea(ring []layout.Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := range ring {
		p, q := vec(ring[i]), vec(ring[(i+1)%len(ring)])
		sum += r2.Cross(p, q)
	}
	return math.Abs(sum) / 2
}

// =============================================================================
// Path
// =============================================================================

func (s *Shape) PathWidth() float64    { return s.width }
func (s *Shape) PathBeginExt() float64 { return s.beginExt }
func (s *Shape) PathEndExt() float64   { return s.endExt }

// PathLength returns the spine length including both end extensions.
func (s *Shape) PathLength() float64 {
	if s.kind != layout.KindPath {
		return 0
	}
	var length float64
	for i := 1; i < len(s.points); i++ {
		length += r2.Norm(r2.Sub(vec(s.points[i]), vec(s.points[i-1])))
	}
	return length + s.beginExt + s.endExt
}

func (s *Shape) PathPoints() []layout.Point {
	if s.kind != layout.KindPath {
		return nil
	}
	return clonePoints(s.points)
}

// PathPolygon returns the path outline as a polygon.
func (s *Shape) PathPolygon() layout.Polygon {
	return &Shape{kind: layout.KindPolygon, points: s.contour()}
}

// contour offsets the spine by half the width on each side. Interior
// vertices use the averaged normal of the adjacent segments; joins are not
// mitered.
func (s *Shape) contour() []layout.Point {
	if s.kind != layout.KindPath || len(s.points) < 2 {
		return nil
	}
	n := len(s.points)
	spine := make([]r2.Vec, n)
	for i, p := range s.points {
		spine[i] = vec(p)
	}
	first := unit(r2.Sub(spine[1], spine[0]))
	last := unit(r2.Sub(spine[n-1], spine[n-2]))
	spine[0] = r2.Sub(spine[0], r2.Scale(s.beginExt, first))
	spine[n-1] = r2.Add(spine[n-1], r2.Scale(s.endExt, last))

	half := s.width / 2
	left := make([]layout.Point, n)
	right := make([]layout.Point, n)
	for i := range spine {
		var dir r2.Vec
		switch i {
		case 0:
			dir = first
		case n - 1:
			dir = last
		default:
			dir = unit(r2.Add(unit(r2.Sub(spine[i], spine[i-1])), unit(r2.Sub(spine[i+1], spine[i]))))
		}
		normal := r2.Vec{X: -dir.Y, Y: dir.X}
		left[i] = point(r2.Add(spine[i], r2.Scale(half, normal)))
		right[i] = point(r2.Sub(spine[i], r2.Scale(half, normal)))
	}

	out := make([]layout.Point, 0, 2*n)
	out = append(out, right...)
	for i := n - 1; i >= 0; i-- {
		out = append(out, left[i])
	}
	return out
}

// =============================================================================
// Text
// =============================================================================

func (s *Shape) Text() string { return s.text }

// TextPos returns the first stored point, the anchor of a text shape.
func (s *Shape) TextPos() layout.Point {
	if len(s.points) == 0 {
		return layout.Point{}
	}
	return s.points[0]
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Shape) bbox() layout.Box {
	b := layout.EmptyBox()
	for _, p := range s.HullPoints() {
		b = b.Extend(p)
	}
	if s.kind == layout.KindText {
		b = b.Extend(s.TextPos())
	}
	return b
}

func vec(p layout.Point) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func point(v r2.Vec) layout.Point { return layout.Point{X: v.X, Y: v.Y} }

// unit normalizes v, leaving zero vectors untouched.
func unit(v r2.Vec) r2.Vec {
	if r2.Norm(v) == 0 {
		return v
	}
	return r2.Unit(v)
}

var _ layout.Shape = (*Shape)(nil)
