package memdb

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/icview/pkg/layout"
)

func pt(x, y float64) layout.Point { return layout.Point{X: x, Y: y} }

func TestOpenAssignsSessionID(t *testing.T) {
	a, b := Open(), Open()
	defer a.Close()
	defer b.Close()

	if a.ID() == uuid.Nil {
		t.Error("session ID should not be nil")
	}
	if a.ID() == b.ID() {
		t.Error("sessions should have distinct IDs")
	}
}

func TestLayers(t *testing.T) {
	db := Open()
	defer db.Close()

	m1, err := db.AddLayer(layout.LayerInfo{Name: "M1", Layer: 5, Datatype: 0})
	if err != nil {
		t.Fatal(err)
	}
	m2, _ := db.AddLayer(layout.LayerInfo{Name: "M2", Layer: 6, Datatype: 0})
	again, _ := db.AddLayer(layout.LayerInfo{Name: "other", Layer: 5, Datatype: 0})
	if again != m1 {
		t.Errorf("re-adding 5/0 returned %v, want %v", again, m1)
	}

	got, err := db.FindLayer(6, 0)
	if err != nil || got != m2 {
		t.Errorf("FindLayer(6, 0) = %v, %v", got, err)
	}
	if _, err := db.FindLayer(6, 1); !errors.Is(err, layout.ErrLayerNotFound) {
		t.Errorf("FindLayer(6, 1) err = %v, want ErrLayerNotFound", err)
	}

	layers, _ := db.Layers()
	if diff := cmp.Diff([]layout.LayerIndex{m1, m2}, layers); diff != "" {
		t.Errorf("Layers() mismatch (-want +got):\n%s", diff)
	}

	info, _ := db.LayerInfo(m1)
	if info.Name != "M1" {
		t.Errorf("LayerInfo(m1).Name = %q, re-adding must not rename", info.Name)
	}

	if err := db.SetLayerInfo(m1, layout.LayerInfo{Name: "METAL1", Layer: 7, Datatype: 1}); err != nil {
		t.Fatal(err)
	}
	if got, err := db.FindLayer(7, 1); err != nil || got != m1 {
		t.Errorf("FindLayer(7, 1) after SetLayerInfo = %v, %v", got, err)
	}
	if _, err := db.LayerInfo(42); !errors.Is(err, layout.ErrLayerNotFound) {
		t.Errorf("LayerInfo(42) err = %v", err)
	}
	if err := db.SetLayerInfo(-1, layout.LayerInfo{}); !errors.Is(err, layout.ErrLayerNotFound) {
		t.Errorf("SetLayerInfo(-1) err = %v", err)
	}
}

func TestSetLayerInfoRejectsTakenNumbers(t *testing.T) {
	db := Open()
	defer db.Close()
	a, _ := db.AddLayer(layout.LayerInfo{Name: "A", Layer: 5})
	b, _ := db.AddLayer(layout.LayerInfo{Name: "B", Layer: 6})

	err := db.SetLayerInfo(b, layout.LayerInfo{Name: "B", Layer: 5})
	if !errors.Is(err, layout.ErrLayerExists) {
		t.Fatalf("renumbering onto 5/0: err = %v, want ErrLayerExists", err)
	}
	if info, _ := db.LayerInfo(b); info != (layout.LayerInfo{Name: "B", Layer: 6}) {
		t.Errorf("LayerInfo(b) = %+v, rejected write must not apply", info)
	}
	if got, _ := db.FindLayer(5, 0); got != a {
		t.Errorf("FindLayer(5, 0) = %v, want %v", got, a)
	}

	// Rewriting a layer's own numbers is fine.
	if err := db.SetLayerInfo(a, layout.LayerInfo{Name: "A2", Layer: 5}); err != nil {
		t.Errorf("renaming in place: %v", err)
	}
}

func TestCells(t *testing.T) {
	db := Open()
	defer db.Close()

	for _, name := range []string{"TOP", "INV", "NAND2"} {
		if _, err := db.AddCell(name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.AddCell("TOP"); err == nil {
		t.Error("duplicate cell name should fail")
	}
	if _, err := db.AddCell(""); err == nil {
		t.Error("empty cell name should fail")
	}

	cells, _ := db.Cells()
	var names []string
	for _, c := range cells {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"TOP", "INV", "NAND2"}, names); diff != "" {
		t.Errorf("Cells() order mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.Cell("INV"); err != nil {
		t.Errorf("Cell(INV) error: %v", err)
	}
	if _, err := db.Cell("XOR"); !errors.Is(err, layout.ErrCellNotFound) {
		t.Errorf("Cell(XOR) err = %v, want ErrCellNotFound", err)
	}
}

func TestCellShapesAndBBox(t *testing.T) {
	db := Open()
	defer db.Close()
	m1, _ := db.AddLayer(layout.LayerInfo{Name: "M1", Layer: 1})
	m2, _ := db.AddLayer(layout.LayerInfo{Name: "M2", Layer: 2})
	c, _ := db.AddCell("TOP")

	bbox, _ := c.BBox()
	if !bbox.Empty {
		t.Errorf("BBox() of an empty cell = %+v, want empty", bbox)
	}

	b, _ := c.AddBox(m1, pt(10, 10), pt(0, 0))
	p, _ := c.AddPath(m2, []layout.Point{pt(0, 50), pt(100, 50)}, 4, 0, 0)

	shapes, _ := c.Shapes(m1)
	if len(shapes) != 1 || shapes[0] != layout.Shape(b) {
		t.Errorf("Shapes(m1) = %v", shapes)
	}
	shapes, _ = c.Shapes(m2)
	if len(shapes) != 1 || shapes[0] != layout.Shape(p) {
		t.Errorf("Shapes(m2) = %v", shapes)
	}
	if shapes, _ := c.Shapes(99); len(shapes) != 0 {
		t.Errorf("Shapes(99) = %v, want none", shapes)
	}
	used, err := c.Layers()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]layout.LayerIndex{m1, m2}, used); diff != "" {
		t.Errorf("Layers() mismatch (-want +got):\n%s", diff)
	}

	bbox, _ = c.BBox()
	want := layout.Box{Min: pt(0, 0), Max: pt(100, 52)}
	if bbox != want {
		t.Errorf("BBox() = %+v, want %+v", bbox, want)
	}

	if ok, err := c.Remove(b); !ok || err != nil {
		t.Errorf("Remove(b) = %v, %v", ok, err)
	}
	if ok, _ := c.Remove(b); ok {
		t.Error("second Remove(b) = true")
	}
	if shapes, _ := c.Shapes(m1); len(shapes) != 0 {
		t.Errorf("Shapes(m1) after Remove = %v", shapes)
	}
}

func TestAddValidation(t *testing.T) {
	db := Open()
	defer db.Close()
	m1, _ := db.AddLayer(layout.LayerInfo{Layer: 1})
	c, _ := db.AddCell("TOP")

	if _, err := c.AddBox(5, pt(0, 0), pt(1, 1)); !errors.Is(err, layout.ErrLayerNotFound) {
		t.Errorf("AddBox on unknown layer err = %v", err)
	}
	if _, err := c.AddPolygon(m1, []layout.Point{pt(0, 0), pt(1, 1)}); err == nil {
		t.Error("AddPolygon with 2 points should fail")
	}
	if _, err := c.AddPolygon(m1, []layout.Point{pt(0, 0), pt(4, 0), pt(0, 4)}, []layout.Point{pt(1, 1)}); err == nil {
		t.Error("AddPolygon with a 1-point hole should fail")
	}
	if _, err := c.AddPath(m1, []layout.Point{pt(0, 0)}, 1, 0, 0); err == nil {
		t.Error("AddPath with 1 point should fail")
	}
}

func TestShapeKinds(t *testing.T) {
	db := Open()
	defer db.Close()
	m1, _ := db.AddLayer(layout.LayerInfo{Layer: 1})
	c, _ := db.AddCell("TOP")

	box, _ := c.AddBox(m1, pt(0, 0), pt(4, 2))
	poly, _ := c.AddPolygon(m1, []layout.Point{pt(0, 0), pt(4, 0), pt(0, 3)})
	path, _ := c.AddPath(m1, []layout.Point{pt(0, 0), pt(3, 4)}, 1, 0, 0)
	text, _ := c.AddText(m1, pt(7, 8), "CLK")

	tests := []struct {
		name  string
		shape *Shape
		kind  layout.Kind
		area  float64
	}{
		{"box", box, layout.KindBox, 8},
		{"polygon", poly, layout.KindPolygon, 6},
		{"path", path, layout.KindPath, 5},
		{"text", text, layout.KindText, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.shape
			if s.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", s.Kind(), tt.kind)
			}
			preds := []bool{s.IsBox(), s.IsPolygon(), s.IsPath(), s.IsText()}
			n := 0
			for _, p := range preds {
				if p {
					n++
				}
			}
			if n != 1 {
				t.Errorf("exactly one kind predicate should hold, got %v", preds)
			}
			if math.Abs(s.Area()-tt.area) > 1e-9 {
				t.Errorf("Area() = %v, want %v", s.Area(), tt.area)
			}
		})
	}

	if box.BoxCenter() != pt(2, 1) || box.BoxP1() != pt(0, 0) || box.BoxP2() != pt(4, 2) {
		t.Errorf("box center/p1/p2 = %v %v %v", box.BoxCenter(), box.BoxP1(), box.BoxP2())
	}
	if len(box.HullPoints()) != 4 {
		t.Errorf("box hull = %v", box.HullPoints())
	}
	if path.PathLength() != 5 {
		t.Errorf("PathLength() = %v, want 5", path.PathLength())
	}
	if text.Text() != "CLK" || text.TextPos() != pt(7, 8) {
		t.Errorf("text = %q at %v", text.Text(), text.TextPos())
	}
	if poly.PathPoints() != nil || poly.PathLength() != 0 {
		t.Error("path accessors on a polygon should return zero values")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []layout.Kind{layout.KindBox, layout.KindPolygon, layout.KindPath, layout.KindText} {
		if got := layout.ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v", k.String(), got)
		}
	}
	if layout.ParseKind("circle") != layout.KindUnknown {
		t.Error("unknown kinds should parse to KindUnknown")
	}
}

func TestClosedSession(t *testing.T) {
	db := Open()
	m1, _ := db.AddLayer(layout.LayerInfo{Layer: 1})
	c, _ := db.AddCell("TOP")

	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if !db.Closed() {
		t.Error("Closed() = false")
	}

	checks := map[string]error{}
	_, checks["Cells"] = db.Cells()
	_, checks["Cell"] = db.Cell("TOP")
	_, checks["FindLayer"] = db.FindLayer(1, 0)
	_, checks["Layers"] = db.Layers()
	_, checks["LayerInfo"] = db.LayerInfo(m1)
	checks["SetLayerInfo"] = db.SetLayerInfo(m1, layout.LayerInfo{})
	_, checks["AddLayer"] = db.AddLayer(layout.LayerInfo{Layer: 2})
	_, checks["AddCell"] = db.AddCell("NEW")
	_, checks["Shapes"] = c.Shapes(m1)
	_, checks["BBox"] = c.BBox()
	_, checks["AddBox"] = c.AddBox(m1, pt(0, 0), pt(1, 1))
	_, checks["CellLayers"] = c.Layers()
	_, checks["Remove"] = c.Remove(&Shape{})

	for name, err := range checks {
		if !errors.Is(err, layout.ErrSessionClosed) {
			t.Errorf("%s after Close: err = %v, want ErrSessionClosed", name, err)
		}
	}
}
