package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/icview/pkg/icdata"
	icio "github.com/matzehuels/icview/pkg/io"
)

func newBrowser(t *testing.T) LayerBrowserModel {
	t.Helper()
	db, err := icio.ReadLayout(strings.NewReader(testLayout), icio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	d, err := icdata.LoadLayoutData(db, []icdata.LayerRule{
		{Layer: 5, Datatype: 0, Purpose: "pin-drawing", SkipLabels: true},
		{Layer: 6, Datatype: 0, Purpose: "drawing", SkipLabels: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewLayerBrowserModel(d)
}

func press(m LayerBrowserModel, keys ...string) LayerBrowserModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(LayerBrowserModel)
	}
	return m
}

func TestLayerBrowserNavigation(t *testing.T) {
	m := newBrowser(t)

	if len(m.rows) != 2 {
		t.Fatalf("rows = %v, want one per cell", m.rows)
	}
	if !m.cached {
		t.Error("first layer was classified at load time and should report cached")
	}

	m = press(m, "down", "down")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1 (clamped)", m.Cursor)
	}
	m = press(m, "up", "up", "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestLayerBrowserRefreshAndLabels(t *testing.T) {
	m := newBrowser(t)
	l := m.current()

	m = press(m, "r")
	if m.cached {
		t.Error("refresh should report a fresh classification")
	}
	if !l.Cached() {
		t.Error("refresh should leave the layer cached")
	}

	m = press(m, "s")
	if l.SkipLabels() {
		t.Error("s should toggle label skipping off")
	}
	var labels string
	for _, row := range m.rows {
		if row[0] == "TOP" {
			labels = row[4]
		}
	}
	if labels != "1" {
		t.Errorf("TOP labels after toggle = %q, want 1", labels)
	}
}

func TestLayerBrowserSelect(t *testing.T) {
	m := newBrowser(t)
	m = press(m, "down")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	fm := next.(LayerBrowserModel)
	if fm.Selected == nil || fm.Selected.Index() != 6 {
		t.Errorf("Selected = %v, want layer 6/0", fm.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestLayerBrowserView(t *testing.T) {
	m := newBrowser(t)
	view := m.View()
	for _, want := range []string{"Layers", "M1 (5/0)", "6/0", "TOP", "SUB", "drawing-pin", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 3})
	if got := next.(LayerBrowserModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}
