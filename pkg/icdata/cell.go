package icdata

import (
	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/layout"
)

// CellData groups the classified shapes of one cell by layer name.
//
// Only raw engine references are stored. Polygons, Boxes and Paths build
// fresh views on every call.
type CellData struct {
	db   layout.Database
	name string

	layers   []string
	polygons map[string][]layout.Shape
	boxes    map[string][]layout.Shape
	paths    map[string][]layout.Shape
	labels   map[string][]layout.Shape
	pins     map[string][][2]float64
	nets     []layout.Shape
}

// NewCellData returns an empty CellData for the engine cell called name.
func NewCellData(db layout.Database, name string) *CellData {
	return &CellData{
		db:       db,
		name:     name,
		polygons: make(map[string][]layout.Shape),
		boxes:    make(map[string][]layout.Shape),
		paths:    make(map[string][]layout.Shape),
		labels:   make(map[string][]layout.Shape),
		pins:     make(map[string][][2]float64),
	}
}

func (c *CellData) Name() string { return c.name }

// SetName always fails: a cell's name is fixed at construction.
func (c *CellData) SetName(name string) error {
	return errors.New(errors.ErrCodeImmutable, "cell %q cannot be renamed to %q", c.name, name)
}

// EngineCell looks up the engine cell by name.
func (c *CellData) EngineCell() (layout.Cell, error) {
	return c.db.Cell(c.name)
}

// BBox queries the engine for the cell's current bounding box. It is never
// cached.
func (c *CellData) BBox() (layout.Box, error) {
	cell, err := c.EngineCell()
	if err != nil {
		return layout.Box{}, engineError(err, "bbox of cell %q", c.name)
	}
	return cell.BBox()
}

// AddLayer appends a classified bucket under layerName. Nets are appended
// to the cell's net list. A nil bucket only registers the layer name.
func (c *CellData) AddLayer(layerName string, b *CellShapes) {
	if !c.hasLayer(layerName) {
		c.layers = append(c.layers, layerName)
	}
	if b == nil {
		return
	}
	if len(b.Polygons) > 0 {
		c.polygons[layerName] = append(c.polygons[layerName], b.Polygons...)
	}
	if len(b.Boxes) > 0 {
		c.boxes[layerName] = append(c.boxes[layerName], b.Boxes...)
	}
	if len(b.Paths) > 0 {
		c.paths[layerName] = append(c.paths[layerName], b.Paths...)
	}
	if len(b.Labels) > 0 {
		c.labels[layerName] = append(c.labels[layerName], b.Labels...)
	}
	if len(b.Pins) > 0 {
		c.pins[layerName] = append(c.pins[layerName], b.Pins...)
	}
	c.nets = append(c.nets, b.Nets...)
}

func (c *CellData) hasLayer(name string) bool {
	for _, l := range c.layers {
		if l == name {
			return true
		}
	}
	return false
}

// LayerNames returns the layer names in the order they were added.
func (c *CellData) LayerNames() []string {
	out := make([]string, len(c.layers))
	copy(out, c.layers)
	return out
}

// Polygons wraps every stored polygon in a PolygonView.
func (c *CellData) Polygons() map[string][]PolygonView {
	out := make(map[string][]PolygonView, len(c.polygons))
	for layer, shapes := range c.polygons {
		views := make([]PolygonView, len(shapes))
		for i, s := range shapes {
			views[i] = NewPolygonView(s)
		}
		out[layer] = views
	}
	return out
}

// Boxes wraps every stored box in a BoxView.
func (c *CellData) Boxes() map[string][]BoxView {
	out := make(map[string][]BoxView, len(c.boxes))
	for layer, shapes := range c.boxes {
		views := make([]BoxView, len(shapes))
		for i, s := range shapes {
			views[i] = NewBoxView(s)
		}
		out[layer] = views
	}
	return out
}

// Paths wraps every stored path in a PathView.
func (c *CellData) Paths() map[string][]PathView {
	out := make(map[string][]PathView, len(c.paths))
	for layer, shapes := range c.paths {
		views := make([]PathView, len(shapes))
		for i, s := range shapes {
			views[i] = NewPathView(s)
		}
		out[layer] = views
	}
	return out
}

// Labels returns the stored text shapes by layer name.
func (c *CellData) Labels() map[string][]layout.Shape { return c.labels }

// Pins returns the stored pin centers by layer name.
func (c *CellData) Pins() map[string][][2]float64 { return c.pins }

// Nets returns every net shape over all layers.
func (c *CellData) Nets() []layout.Shape { return c.nets }
