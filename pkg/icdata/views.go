package icdata

import "github.com/matzehuels/icview/pkg/layout"

// =============================================================================
// BoxView
// =============================================================================

// BoxView is a read-only view over an engine box shape. It does not check
// the shape kind.
type BoxView struct {
	shape layout.Shape
}

// NewBoxView wraps s.
func NewBoxView(s layout.Shape) BoxView { return BoxView{shape: s} }

// Shape returns the wrapped engine shape.
func (v BoxView) Shape() layout.Shape { return v.shape }

func (v BoxView) IsBox() bool          { return v.shape.IsBox() }
func (v BoxView) Center() layout.Point { return v.shape.BoxCenter() }
func (v BoxView) P1() layout.Point     { return v.shape.BoxP1() }
func (v BoxView) P2() layout.Point     { return v.shape.BoxP2() }

// =============================================================================
// PathView
// =============================================================================

// PathView is a read-only view over an engine path shape. It does not check
// the shape kind.
type PathView struct {
	shape layout.Shape
}

// NewPathView wraps s.
func NewPathView(s layout.Shape) PathView { return PathView{shape: s} }

// Shape returns the wrapped engine shape.
func (v PathView) Shape() layout.Shape { return v.shape }

func (v PathView) IsPath() bool   { return v.shape.IsPath() }
func (v PathView) Width() float64 { return v.shape.PathWidth() }

// BeginExtension is the extension past the first spine point.
func (v PathView) BeginExtension() float64 { return v.shape.PathBeginExt() }

// EndExtension is the extension past the last spine point.
func (v PathView) EndExtension() float64 { return v.shape.PathEndExt() }

// Length is the path length as reported by the engine.
func (v PathView) Length() float64 { return v.shape.PathLength() }

// Points returns the spine points.
func (v PathView) Points() []layout.Point { return v.shape.PathPoints() }

// Contour returns the path outline as a polygon view.
func (v PathView) Contour() PolygonView { return NewPolygonView(v.shape.PathPolygon()) }

// =============================================================================
// PolygonView
// =============================================================================

// PolygonView is a read-only view over an engine polygon.
type PolygonView struct {
	poly layout.Polygon
}

// NewPolygonView wraps p. Engine shapes satisfy layout.Polygon.
func NewPolygonView(p layout.Polygon) PolygonView { return PolygonView{poly: p} }

// Polygon returns the wrapped engine polygon.
func (v PolygonView) Polygon() layout.Polygon { return v.poly }

func (v PolygonView) IsPolygon() bool       { return v.poly.IsPolygon() }
func (v PolygonView) IsSimplePolygon() bool { return v.poly.IsSimplePolygon() }

// PointsHull returns the outer contour.
func (v PolygonView) PointsHull() []layout.Point { return v.poly.HullPoints() }

// PointsHole returns the first hole contour. It is nil for simple polygons
// and when the engine reports no hole points. Further holes are only
// reachable through Holes.
func (v PolygonView) PointsHole() []layout.Point {
	if v.IsSimplePolygon() {
		return nil
	}
	pts := v.poly.HolePoints()
	if len(pts) == 0 {
		return nil
	}
	return pts
}

// Edges returns every edge of the hull and holes.
func (v PolygonView) Edges() []layout.Edge { return v.poly.Edges() }

// Holes returns the engine's hole contours, or nil for a polygon without
// holes.
func (v PolygonView) Holes() [][]layout.Point {
	holes := v.poly.Holes()
	if len(holes) == 0 {
		return nil
	}
	return holes
}

// NumHoles returns the number of hole contours; 0 for a simple polygon.
func (v PolygonView) NumHoles() int { return len(v.poly.Holes()) }

// Area returns the engine's area for the polygon.
func (v PolygonView) Area() float64 { return v.poly.Area() }
