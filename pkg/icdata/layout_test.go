package icdata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayoutDataAccessors(t *testing.T) {
	m := newMixedLayout(t)
	m1 := NewLayerData(m.db, "M1", 5, 0, "drawing")
	top := NewCellData(m.db, "TOP")

	d := NewLayoutData(m.db, []*LayerData{m1}, []*CellData{top})
	if d.Database() != m.db {
		t.Error("Database() mismatch")
	}
	if l, ok := d.Layer("M1"); !ok || l != m1 {
		t.Error("Layer(M1) not found")
	}
	if _, ok := d.Layer("M9"); ok {
		t.Error("Layer(M9) should not be found")
	}
	if c, ok := d.Cell("TOP"); !ok || c != top {
		t.Error("Cell(TOP) not found")
	}

	d.SetLayers(nil)
	d.SetCells(nil)
	if len(d.Layers()) != 0 || len(d.Cells()) != 0 {
		t.Error("setters should replace the lists")
	}
}

// Cells and layers are not cross-checked.
func TestLayoutDataNoCrossValidation(t *testing.T) {
	m := newMixedLayout(t)
	d := NewLayoutData(m.db,
		[]*LayerData{NewLayerData(m.db, "GHOST", 42, 0, "drawing")},
		[]*CellData{NewCellData(m.db, "MISSING")})
	if len(d.Layers()) != 1 || len(d.Cells()) != 1 {
		t.Error("LayoutData should keep whatever it was given")
	}
}

func TestCollectCells(t *testing.T) {
	m := newMixedLayout(t)
	layers := []*LayerData{
		NewLayerData(m.db, "M1", 5, 0, "pin-drawing"),
		NewLayerData(m.db, "M2", 6, 0, "net"),
	}

	cells, err := CollectCells(m.db, layers)
	if err != nil {
		t.Fatalf("CollectCells() error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}

	top := cells[0]
	if top.Name() != "TOP" {
		t.Fatalf("first cell = %q, want TOP", top.Name())
	}
	if diff := cmp.Diff([]string{"M1", "M2"}, top.LayerNames()); diff != "" {
		t.Errorf("LayerNames() mismatch (-want +got):\n%s", diff)
	}
	if len(top.Boxes()["M1"]) != 1 || len(top.Polygons()["M1"]) != 1 || len(top.Paths()["M1"]) != 1 {
		t.Errorf("TOP drawing shapes: boxes=%d polygons=%d paths=%d",
			len(top.Boxes()["M1"]), len(top.Polygons()["M1"]), len(top.Paths()["M1"]))
	}
	if diff := cmp.Diff([][2]float64{{5, 5}}, top.Pins()["M1"]); diff != "" {
		t.Errorf("TOP pins mismatch (-want +got):\n%s", diff)
	}
	if len(top.Nets()) != 1 {
		t.Errorf("TOP nets = %d, want 1", len(top.Nets()))
	}

	sub := cells[1]
	if diff := cmp.Diff([][2]float64{{-2, 0}}, sub.Pins()["M1"]); diff != "" {
		t.Errorf("SUB pins mismatch (-want +got):\n%s", diff)
	}
	if len(sub.Nets()) != 0 {
		t.Errorf("SUB nets = %d, want 0", len(sub.Nets()))
	}
}

func TestLoadLayoutData(t *testing.T) {
	t.Run("no rules loads every layer as drawing", func(t *testing.T) {
		m := newMixedLayout(t)
		d, err := LoadLayoutData(m.db, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Layers()) != 2 {
			t.Fatalf("got %d layers, want 2", len(d.Layers()))
		}
		for _, l := range d.Layers() {
			if l.Purpose() != PurposeDrawing || !l.SkipLabels() {
				t.Errorf("%s: purpose=%v skip=%v", l, l.Purpose(), l.SkipLabels())
			}
		}
		if len(d.Cells()) != 2 {
			t.Errorf("got %d cells, want 2", len(d.Cells()))
		}
	})

	t.Run("rules select and configure layers", func(t *testing.T) {
		m := newMixedLayout(t)
		d, err := LoadLayoutData(m.db, []LayerRule{
			{Layer: 5, Datatype: 0, Purpose: "pin", SkipLabels: false},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Layers()) != 1 {
			t.Fatalf("got %d layers, want 1", len(d.Layers()))
		}
		l := d.Layers()[0]
		if l.Name() != "M1" || l.Purpose() != PurposePin || l.SkipLabels() {
			t.Errorf("layer = %s purpose=%v skip=%v", l, l.Purpose(), l.SkipLabels())
		}
		top, _ := d.Cell("TOP")
		if len(top.Labels()["M1"]) != 1 {
			t.Errorf("TOP labels = %d, want 1", len(top.Labels()["M1"]))
		}
	})

	t.Run("options override rules", func(t *testing.T) {
		m := newMixedLayout(t)
		d, err := LoadLayoutData(m.db, []LayerRule{{Layer: 5, Purpose: "drawing"}}, WithSkipLabels(true))
		if err != nil {
			t.Fatal(err)
		}
		if !d.Layers()[0].SkipLabels() {
			t.Error("WithSkipLabels(true) should win over the rule")
		}
	})
}
