package memdb

import (
	"fmt"

	"github.com/matzehuels/icview/pkg/layout"
)

// Cell is a named set of shapes grouped by layer.
type Cell struct {
	db     *Database
	name   string
	shapes map[layout.LayerIndex][]*Shape
}

// Name returns the cell name.
func (c *Cell) Name() string { return c.name }

// Shapes returns the shapes on layer idx in insertion order. An unknown or
// empty layer yields an empty slice.
func (c *Cell) Shapes(idx layout.LayerIndex) ([]layout.Shape, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	if c.db.closed {
		return nil, layout.ErrSessionClosed
	}
	src := c.shapes[idx]
	out := make([]layout.Shape, len(src))
	for i, s := range src {
		out[i] = s
	}
	return out, nil
}

// BBox returns the bounding box over all layers. A cell without shapes
// returns an empty box.
func (c *Cell) BBox() (layout.Box, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	if c.db.closed {
		return layout.Box{}, layout.ErrSessionClosed
	}
	bbox := layout.EmptyBox()
	for _, list := range c.shapes {
		for _, s := range list {
			bbox = bbox.Union(s.bbox())
		}
	}
	return bbox, nil
}

// Layers returns the layer handles that carry at least one shape.
func (c *Cell) Layers() ([]layout.LayerIndex, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	if c.db.closed {
		return nil, layout.ErrSessionClosed
	}
	out := make([]layout.LayerIndex, 0, len(c.shapes))
	for idx := range c.db.layers {
		if len(c.shapes[layout.LayerIndex(idx)]) > 0 {
			out = append(out, layout.LayerIndex(idx))
		}
	}
	return out, nil
}

// AddBox places an axis-aligned box spanned by two corners.
func (c *Cell) AddBox(idx layout.LayerIndex, p1, p2 layout.Point) (*Shape, error) {
	b := layout.BoxOf(p1, p2)
	return c.add(idx, &Shape{kind: layout.KindBox, points: []layout.Point{b.Min, b.Max}})
}

// AddPolygon places a polygon with an outer contour and optional holes.
func (c *Cell) AddPolygon(idx layout.LayerIndex, hull []layout.Point, holes ...[]layout.Point) (*Shape, error) {
	if len(hull) < 3 {
		return nil, fmt.Errorf("add polygon: hull needs at least 3 points, got %d", len(hull))
	}
	s := &Shape{kind: layout.KindPolygon, points: clonePoints(hull)}
	for _, h := range holes {
		if len(h) < 3 {
			return nil, fmt.Errorf("add polygon: hole needs at least 3 points, got %d", len(h))
		}
		s.holes = append(s.holes, clonePoints(h))
	}
	return c.add(idx, s)
}

// AddPath places a path along points with the given width and end extensions.
func (c *Cell) AddPath(idx layout.LayerIndex, points []layout.Point, width, beginExt, endExt float64) (*Shape, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("add path: needs at least 2 points, got %d", len(points))
	}
	return c.add(idx, &Shape{
		kind:     layout.KindPath,
		points:   clonePoints(points),
		width:    width,
		beginExt: beginExt,
		endExt:   endExt,
	})
}

// AddText places a text label anchored at p.
func (c *Cell) AddText(idx layout.LayerIndex, p layout.Point, text string) (*Shape, error) {
	return c.add(idx, &Shape{kind: layout.KindText, points: []layout.Point{p}, text: text})
}

func (c *Cell) add(idx layout.LayerIndex, s *Shape) (*Shape, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if c.db.closed {
		return nil, layout.ErrSessionClosed
	}
	if !c.db.validLocked(idx) {
		return nil, fmt.Errorf("%w: index %d", layout.ErrLayerNotFound, idx)
	}
	c.shapes[idx] = append(c.shapes[idx], s)
	return s, nil
}

// Remove deletes s from the cell. It reports whether the shape was found.
func (c *Cell) Remove(s *Shape) (bool, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if c.db.closed {
		return false, layout.ErrSessionClosed
	}
	for idx, list := range c.shapes {
		for i, cur := range list {
			if cur == s {
				c.shapes[idx] = append(list[:i:i], list[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func clonePoints(pts []layout.Point) []layout.Point {
	out := make([]layout.Point, len(pts))
	copy(out, pts)
	return out
}

var _ layout.Cell = (*Cell)(nil)
