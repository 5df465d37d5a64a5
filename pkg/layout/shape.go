package layout

// Kind identifies the geometric kind of a shape.
type Kind int

// Shape kinds.
const (
	KindUnknown Kind = iota
	KindBox
	KindPolygon
	KindPath
	KindText
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindBox:     "box",
	KindPolygon: "polygon",
	KindPath:    "path",
	KindText:    "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to a Kind. Unknown names yield KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return KindUnknown
}

// Polygon is the engine's polygon object: one hull contour and zero or more
// hole contours.
type Polygon interface {
	IsPolygon() bool
	IsSimplePolygon() bool

	// HullPoints returns the points of the outer contour.
	HullPoints() []Point

	// HolePoints returns the points of the first hole contour, or nil.
	HolePoints() []Point

	// Holes returns every hole contour, or nil.
	Holes() [][]Point

	Edges() []Edge
	Area() float64
}

// Shape is a single engine shape. Only the methods matching its kind return
// meaningful data.
type Shape interface {
	Polygon

	Kind() Kind
	IsBox() bool
	IsPath() bool
	IsText() bool

	BoxCenter() Point
	BoxP1() Point
	BoxP2() Point

	PathWidth() float64
	PathBeginExt() float64
	PathEndExt() float64
	PathLength() float64
	PathPoints() []Point

	// PathPolygon returns the outline of the path as a polygon.
	PathPolygon() Polygon

	Text() string
	TextPos() Point
}
