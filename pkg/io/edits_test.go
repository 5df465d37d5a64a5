package io

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
	"github.com/matzehuels/icview/pkg/layout/memdb"
)

func loadFixture(t *testing.T, rules []icdata.LayerRule) (*memdb.Database, *icdata.LayoutData) {
	t.Helper()
	db, err := ReadLayout(strings.NewReader(layoutTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	d, err := icdata.LoadLayoutData(db, rules)
	if err != nil {
		t.Fatal(err)
	}
	return db, d
}

func TestReadEditsKeepsDecodedTypes(t *testing.T) {
	tests := []struct {
		format Format
		input  string
		want   []any
	}{
		{FormatTOML, `
[[edit]]
layer = 5
datatype = 0
attr = "name"
value = "METAL1"

[[edit]]
layer = 5
datatype = 0
attr = "index"
value = 7

[[edit]]
layer = 5
datatype = 0
attr = "skip_labels"
value = false
`, []any{"METAL1", int64(7), false}},
		{FormatYAML, `
edit:
  - {layer: 5, datatype: 0, attr: name, value: METAL1}
  - {layer: 5, datatype: 0, attr: index, value: 7}
  - {layer: 5, datatype: 0, attr: skip_labels, value: false}
`, []any{"METAL1", 7, false}},
		{FormatJSON, `{"edit": [
  {"layer": 5, "datatype": 0, "attr": "name", "value": "METAL1"},
  {"layer": 5, "datatype": 0, "attr": "index", "value": 7},
  {"layer": 5, "datatype": 0, "attr": "skip_labels", "value": false}
]}`, []any{"METAL1", int64(7), false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			edits, err := ReadEdits(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadEdits() error: %v", err)
			}
			var got []any
			for _, e := range edits {
				got = append(got, e.Value)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONFloatStaysFloat(t *testing.T) {
	edits, err := ReadEdits(strings.NewReader(`{"edit": [{"layer": 5, "attr": "index", "value": 7.5}]}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := edits[0].Value.(float64); !ok || v != 7.5 {
		t.Errorf("Value = %#v, want 7.5", edits[0].Value)
	}
}

func TestApplyEdits(t *testing.T) {
	db, d := loadFixture(t, nil)

	edits := []Edit{
		{Layer: 5, Datatype: 0, Attr: "name", Value: "METAL1"},
		{Layer: 5, Datatype: 0, Attr: "name", Value: int64(42)},
		{Layer: 9, Datatype: 9, Attr: "name", Value: "X"},
		{Layer: 5, Datatype: 0, Attr: "index", Value: int64(7)},
		{Layer: 7, Datatype: 0, Attr: "purpose", Value: "pin"},
		{Layer: 5, Datatype: 0, Attr: "purpose", Value: "net"},
	}
	results := ApplyEdits(d, edits)

	wantCodes := []errors.Code{
		"",
		errors.ErrCodeInvalidType,
		errors.ErrCodeLayerNotFound,
		"",
		"",
		errors.ErrCodeLayerNotFound, // renumbered by the fourth edit
	}
	for i, r := range results {
		if got := errors.GetCode(r.Err); got != wantCodes[i] {
			t.Errorf("edit %d (%s): code = %q, want %q (err: %v)", i, r.Edit, got, wantCodes[i], r.Err)
		}
	}

	l, ok := d.Layer("METAL1")
	if !ok {
		t.Fatal("layer METAL1 not found after rename")
	}
	if l.Index() != 7 || l.Purpose() != icdata.PurposePin {
		t.Errorf("layer = %s purpose %v", l, l.Purpose())
	}
	if _, err := db.FindLayer(7, 0); err != nil {
		t.Errorf("engine does not know 7/0: %v", err)
	}
}
