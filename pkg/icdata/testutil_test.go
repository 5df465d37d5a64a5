package icdata

import (
	"testing"

	"github.com/matzehuels/icview/pkg/layout"
	"github.com/matzehuels/icview/pkg/layout/memdb"
)

// countingDB counts the engine calls classification makes.
type countingDB struct {
	layout.Database
	cells     int
	findLayer int
}

func (c *countingDB) Cells() ([]layout.Cell, error) {
	c.cells++
	return c.Database.Cells()
}

func (c *countingDB) FindLayer(layer, datatype int) (layout.LayerIndex, error) {
	c.findLayer++
	return c.Database.FindLayer(layer, datatype)
}

func pt(x, y float64) layout.Point { return layout.Point{X: x, Y: y} }

func mustLayer(t *testing.T, db *memdb.Database, name string, layer, datatype int) layout.LayerIndex {
	t.Helper()
	idx, err := db.AddLayer(layout.LayerInfo{Name: name, Layer: layer, Datatype: datatype})
	if err != nil {
		t.Fatalf("AddLayer(%s): %v", name, err)
	}
	return idx
}

func mustCell(t *testing.T, db *memdb.Database, name string) *memdb.Cell {
	t.Helper()
	c, err := db.AddCell(name)
	if err != nil {
		t.Fatalf("AddCell(%s): %v", name, err)
	}
	return c
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

// mixedLayout builds two cells with one shape of every kind on layer 5/0
// and an extra box on 6/0.
type mixedLayout struct {
	db                   *memdb.Database
	top, sub             *memdb.Cell
	box, poly, path, txt *memdb.Shape
	subBox, other        *memdb.Shape
}

func newMixedLayout(t *testing.T) *mixedLayout {
	t.Helper()
	db := memdb.Open()
	t.Cleanup(func() { db.Close() })

	m1 := mustLayer(t, db, "M1", 5, 0)
	m2 := mustLayer(t, db, "M2", 6, 0)

	m := &mixedLayout{db: db}
	m.top = mustCell(t, db, "TOP")
	m.sub = mustCell(t, db, "SUB")

	add := must[*memdb.Shape](t)
	m.box = add(m.top.AddBox(m1, pt(0, 0), pt(10, 10)))
	m.poly = add(m.top.AddPolygon(m1, []layout.Point{pt(20, 0), pt(30, 0), pt(30, 10), pt(20, 10)}))
	m.path = add(m.top.AddPath(m1, []layout.Point{pt(0, 20), pt(40, 20)}, 2, 0, 0))
	m.txt = add(m.top.AddText(m1, pt(5, 5), "VDD"))
	m.subBox = add(m.sub.AddBox(m1, pt(-4, -2), pt(0, 2)))
	m.other = add(m.top.AddBox(m2, pt(100, 100), pt(110, 110)))
	return m
}
