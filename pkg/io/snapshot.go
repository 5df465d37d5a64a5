package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
)

// Snapshot maps layer keys to cell names to classified buckets. A layer key
// is the layer name, or "layer/datatype" for unnamed layers. Named layers
// whose key would repeat are keyed "name (layer/datatype)" instead.
type Snapshot map[string]map[string]Bucket

// Bucket is the JSON form of [icdata.CellShapes].
type Bucket struct {
	Polygons []SnapshotPolygon `json:"polygons,omitempty"`
	Boxes    []SnapshotBox     `json:"boxes,omitempty"`
	Paths    []SnapshotPath    `json:"paths,omitempty"`
	Labels   []SnapshotLabel   `json:"labels,omitempty"`
	Pins     [][2]float64      `json:"pins,omitempty"`
	Nets     []string          `json:"nets,omitempty"` // shape kinds
}

type SnapshotPolygon struct {
	Hull  [][2]float64   `json:"hull"`
	Holes [][][2]float64 `json:"holes,omitempty"`
	Area  float64        `json:"area"`
}

type SnapshotBox struct {
	P1 [2]float64 `json:"p1"`
	P2 [2]float64 `json:"p2"`
}

type SnapshotPath struct {
	Points   [][2]float64 `json:"points"`
	Width    float64      `json:"width"`
	BeginExt float64      `json:"begin_ext,omitempty"`
	EndExt   float64      `json:"end_ext,omitempty"`
	Length   float64      `json:"length"`
}

type SnapshotLabel struct {
	Text string     `json:"text"`
	At   [2]float64 `json:"at"`
}

// TakeSnapshot classifies every layer of d, using cached results where
// present, and collects the buckets. Layer keys that stay ambiguous after
// qualification are rejected with an INVALID_INPUT error.
func TakeSnapshot(d *icdata.LayoutData) (Snapshot, error) {
	keys := layerKeys(d.Layers())
	snap := make(Snapshot, len(d.Layers()))
	for _, k := range keys {
		if _, dup := snap[k]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "snapshot: layer key %q is used by more than one layer", k)
		}
		snap[k] = nil
	}
	for i, l := range d.Layers() {
		shapes, err := l.Shapes()
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l, err)
		}
		cells := make(map[string]Bucket, len(shapes))
		for name, cs := range shapes {
			cells[name] = bucketOf(cs)
		}
		snap[keys[i]] = cells
	}
	return snap, nil
}

func layerKeys(layers []*icdata.LayerData) []string {
	keys := make([]string, len(layers))
	seen := make(map[string]int, len(layers))
	for i, l := range layers {
		keys[i] = l.Name()
		if keys[i] == "" {
			keys[i] = fmt.Sprintf("%d/%d", l.Index(), l.DataType())
		}
		seen[keys[i]]++
	}
	for i, l := range layers {
		if seen[keys[i]] > 1 && l.Name() != "" {
			keys[i] = l.String()
		}
	}
	return keys
}

func bucketOf(cs *icdata.CellShapes) Bucket {
	var b Bucket
	for _, s := range cs.Polygons {
		v := icdata.NewPolygonView(s)
		p := SnapshotPolygon{Hull: pairs(v.PointsHull()), Area: v.Area()}
		for _, h := range v.Holes() {
			p.Holes = append(p.Holes, pairs(h))
		}
		b.Polygons = append(b.Polygons, p)
	}
	for _, s := range cs.Boxes {
		v := icdata.NewBoxView(s)
		b.Boxes = append(b.Boxes, SnapshotBox{P1: v.P1().Pair(), P2: v.P2().Pair()})
	}
	for _, s := range cs.Paths {
		v := icdata.NewPathView(s)
		b.Paths = append(b.Paths, SnapshotPath{
			Points:   pairs(v.Points()),
			Width:    v.Width(),
			BeginExt: v.BeginExtension(),
			EndExt:   v.EndExtension(),
			Length:   v.Length(),
		})
	}
	for _, s := range cs.Labels {
		b.Labels = append(b.Labels, SnapshotLabel{Text: s.Text(), At: s.TextPos().Pair()})
	}
	b.Pins = cs.Pins
	for _, s := range cs.Nets {
		b.Nets = append(b.Nets, s.Kind().String())
	}
	return b
}

// WriteSnapshot classifies d and writes the snapshot to w as indented JSON.
func WriteSnapshot(w io.Writer, d *icdata.LayoutData) error {
	snap, err := TakeSnapshot(d)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes the snapshot of d to a JSON file at path.
func ExportSnapshot(path string, d *icdata.LayoutData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
