package io

import (
	"fmt"
	"io"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/layout"
	"github.com/matzehuels/icview/pkg/layout/memdb"
)

// Layout is the on-disk form of a layout description.
type Layout struct {
	Layers []Layer `toml:"layers" yaml:"layers" json:"layers"`
	Cells  []Cell  `toml:"cells" yaml:"cells" json:"cells"`
}

// Layer declares a named layer.
type Layer struct {
	Name     string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Layer    int    `toml:"layer" yaml:"layer" json:"layer"`
	Datatype int    `toml:"datatype" yaml:"datatype" json:"datatype"`
}

// Cell declares a top-level cell and its shapes.
type Cell struct {
	Name   string  `toml:"name" yaml:"name" json:"name"`
	Shapes []Shape `toml:"shapes,omitempty" yaml:"shapes,omitempty" json:"shapes,omitempty"`
}

// Shape declares one shape. Which fields apply depends on Kind.
type Shape struct {
	Layer    int            `toml:"layer" yaml:"layer" json:"layer"`
	Datatype int            `toml:"datatype" yaml:"datatype" json:"datatype"`
	Kind     string         `toml:"kind" yaml:"kind" json:"kind"`
	Points   [][2]float64   `toml:"points" yaml:"points,flow" json:"points"`
	Holes    [][][2]float64 `toml:"holes,omitempty" yaml:"holes,omitempty,flow" json:"holes,omitempty"`
	Width    float64        `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty"`
	BeginExt float64        `toml:"begin_ext,omitempty" yaml:"begin_ext,omitempty" json:"begin_ext,omitempty"`
	EndExt   float64        `toml:"end_ext,omitempty" yaml:"end_ext,omitempty" json:"end_ext,omitempty"`
	Text     string         `toml:"text,omitempty" yaml:"text,omitempty" json:"text,omitempty"`
}

// ReadLayout decodes a layout description from r and loads it into a new
// memdb session. The caller owns the returned session and must close it.
// ReadLayout does not close r.
func ReadLayout(r io.Reader, f Format, opts ...memdb.Option) (*memdb.Database, error) {
	var desc Layout
	if err := decode(r, f, &desc); err != nil {
		return nil, err
	}
	return BuildLayout(desc, opts...)
}

// ImportLayout reads the layout description file at path. The format is
// chosen by file extension.
func ImportLayout(path string, opts ...memdb.Option) (*memdb.Database, error) {
	f, format, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	db, err := ReadLayout(f, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// BuildLayout loads desc into a new memdb session. Declared layers are
// added first, in order. Cells keep their declaration order.
//
// On any validation error the session is closed and nil is returned.
func BuildLayout(desc Layout, opts ...memdb.Option) (*memdb.Database, error) {
	db := memdb.Open(opts...)
	if err := build(db, desc); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func build(db *memdb.Database, desc Layout) error {
	for i, l := range desc.Layers {
		if err := errors.ValidateLayerNumber(l.Layer, l.Datatype); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if _, err := db.AddLayer(layout.LayerInfo{Name: l.Name, Layer: l.Layer, Datatype: l.Datatype}); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	for _, c := range desc.Cells {
		if err := errors.ValidateCellName(c.Name); err != nil {
			return err
		}
		cell, err := db.AddCell(c.Name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %q", c.Name)
		}
		for i, s := range c.Shapes {
			if err := addShape(db, cell, s); err != nil {
				return fmt.Errorf("cell %q shape %d: %w", c.Name, i, err)
			}
		}
	}
	return nil
}

func addShape(db *memdb.Database, cell *memdb.Cell, s Shape) error {
	if err := errors.ValidateLayerNumber(s.Layer, s.Datatype); err != nil {
		return err
	}
	idx, err := db.AddLayer(layout.LayerInfo{Layer: s.Layer, Datatype: s.Datatype})
	if err != nil {
		return err
	}

	pts := points(s.Points)
	switch layout.ParseKind(s.Kind) {
	case layout.KindBox:
		if len(pts) != 2 {
			return errors.New(errors.ErrCodeInvalidFormat, "box needs 2 points, got %d", len(pts))
		}
		_, err = cell.AddBox(idx, pts[0], pts[1])
	case layout.KindPolygon:
		holes := make([][]layout.Point, len(s.Holes))
		for i, h := range s.Holes {
			holes[i] = points(h)
		}
		_, err = cell.AddPolygon(idx, pts, holes...)
	case layout.KindPath:
		_, err = cell.AddPath(idx, pts, s.Width, s.BeginExt, s.EndExt)
	case layout.KindText:
		if len(pts) != 1 {
			return errors.New(errors.ErrCodeInvalidFormat, "text needs 1 point, got %d", len(pts))
		}
		_, err = cell.AddText(idx, pts[0], s.Text)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown shape kind %q", s.Kind)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", s.Kind)
	}
	return nil
}

// DescribeLayout reads the current state of db back into a description.
// Every engine layer is listed, and shapes are grouped by cell in layer
// order.
func DescribeLayout(db layout.Database) (Layout, error) {
	var desc Layout

	indices, err := db.Layers()
	if err != nil {
		return desc, err
	}
	infos := make(map[layout.LayerIndex]layout.LayerInfo, len(indices))
	for _, idx := range indices {
		info, err := db.LayerInfo(idx)
		if err != nil {
			return desc, err
		}
		infos[idx] = info
		desc.Layers = append(desc.Layers, Layer{Name: info.Name, Layer: info.Layer, Datatype: info.Datatype})
	}

	cells, err := db.Cells()
	if err != nil {
		return desc, err
	}
	for _, c := range cells {
		cd := Cell{Name: c.Name()}
		for _, idx := range indices {
			shapes, err := c.Shapes(idx)
			if err != nil {
				return desc, fmt.Errorf("cell %q: %w", c.Name(), err)
			}
			for _, s := range shapes {
				cd.Shapes = append(cd.Shapes, describeShape(infos[idx], s))
			}
		}
		desc.Cells = append(desc.Cells, cd)
	}
	return desc, nil
}

func describeShape(info layout.LayerInfo, s layout.Shape) Shape {
	out := Shape{Layer: info.Layer, Datatype: info.Datatype, Kind: s.Kind().String()}
	switch s.Kind() {
	case layout.KindBox:
		out.Points = pairs([]layout.Point{s.BoxP1(), s.BoxP2()})
	case layout.KindPolygon:
		out.Points = pairs(s.HullPoints())
		for _, h := range s.Holes() {
			out.Holes = append(out.Holes, pairs(h))
		}
	case layout.KindPath:
		out.Points = pairs(s.PathPoints())
		out.Width = s.PathWidth()
		out.BeginExt = s.PathBeginExt()
		out.EndExt = s.PathEndExt()
	case layout.KindText:
		out.Points = pairs([]layout.Point{s.TextPos()})
		out.Text = s.Text()
	}
	return out
}

// WriteLayout encodes the current state of db to w.
func WriteLayout(w io.Writer, f Format, db layout.Database) error {
	desc, err := DescribeLayout(db)
	if err != nil {
		return fmt.Errorf("describe layout: %w", err)
	}
	return encode(w, f, desc)
}

// ExportLayout writes the current state of db to path. The format is chosen
// by file extension.
func ExportLayout(path string, db layout.Database) error {
	return createFile(path, func(w io.Writer, f Format) error {
		return WriteLayout(w, f, db)
	})
}

func points(in [][2]float64) []layout.Point {
	if len(in) == 0 {
		return nil
	}
	out := make([]layout.Point, len(in))
	for i, p := range in {
		out[i] = layout.Point{X: p[0], Y: p[1]}
	}
	return out
}

func pairs(in []layout.Point) [][2]float64 {
	out := make([][2]float64, len(in))
	for i, p := range in {
		out[i] = p.Pair()
	}
	return out
}
