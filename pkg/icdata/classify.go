package icdata

import (
	"time"

	"github.com/matzehuels/icview/pkg/layout"
	"github.com/matzehuels/icview/pkg/observability"
)

// Shapes returns the classified shapes of this layer keyed by cell name.
//
// The first call classifies; later calls return the same map until
// Invalidate or Refresh is called. The result is a snapshot: engine changes
// made afterwards are not reflected. On error nothing is cached.
func (l *LayerData) Shapes() (map[string]*CellShapes, error) {
	if l.cached {
		observability.Cache().OnCacheHit(l.name)
		return l.shapes, nil
	}
	observability.Cache().OnCacheMiss(l.name)
	return l.Refresh()
}

// Refresh re-runs classification against the current engine state and
// replaces the cache.
func (l *LayerData) Refresh() (map[string]*CellShapes, error) {
	l.Invalidate()

	observability.Classify().OnClassifyStart(l.name, l.purpose.String())
	start := time.Now()
	shapes, walked, err := l.classify()
	elapsed := time.Since(start)
	observability.Classify().OnClassifyComplete(l.name, len(shapes), walked, elapsed, err)
	if err != nil {
		l.logger.Debug("classification failed", "layer", l.String(), "err", err)
		return nil, err
	}

	l.shapes = shapes
	l.cached = true
	l.logger.Debug("classified layer",
		"layer", l.String(),
		"purpose", l.purpose,
		"cells", len(shapes),
		"shapes", walked,
		"elapsed", elapsed.Round(time.Microsecond))
	return l.shapes, nil
}

// Invalidate drops the cached classification. The next Shapes call
// classifies again.
func (l *LayerData) Invalidate() {
	if !l.cached {
		return
	}
	l.shapes = nil
	l.cached = false
	observability.Cache().OnCacheInvalidate(l.name)
}

// Cached reports whether a classification is currently cached.
func (l *LayerData) Cached() bool { return l.cached }

// classify walks every top-level cell and returns one bucket per cell plus
// the number of engine shapes visited.
func (l *LayerData) classify() (map[string]*CellShapes, int, error) {
	cells, err := l.db.Cells()
	if err != nil {
		return nil, 0, engineError(err, "classify layer %s", l)
	}

	out := make(map[string]*CellShapes, len(cells))
	if len(cells) == 0 {
		return out, 0, nil
	}

	idx, err := l.db.FindLayer(l.index, l.dataType)
	if err != nil {
		return nil, 0, engineError(err, "classify layer %s", l)
	}

	walked := 0
	for _, cell := range cells {
		bucket, ok := out[cell.Name()]
		if !ok {
			bucket = &CellShapes{}
			out[cell.Name()] = bucket
		}

		shapes, err := cell.Shapes(idx)
		if err != nil {
			return nil, 0, engineError(err, "classify layer %s in cell %q", l, cell.Name())
		}
		walked += len(shapes)
		l.classifyInto(bucket, shapes)
	}
	return out, walked, nil
}

// classifyInto applies each purpose rule independently.
func (l *LayerData) classifyInto(bucket *CellShapes, shapes []layout.Shape) {
	if l.purpose.Has(PurposePin) {
		for _, s := range shapes {
			// Polygon pins are not supported.
			if s.IsBox() {
				bucket.Pins = append(bucket.Pins, s.BoxCenter().Pair())
			}
		}
	}

	if !l.skipLabels {
		for _, s := range shapes {
			if s.IsText() {
				bucket.Labels = append(bucket.Labels, s)
			}
		}
	}

	if l.purpose.Has(PurposeNet) {
		bucket.Nets = append(bucket.Nets, shapes...)
	}

	if l.purpose.Has(PurposeDrawing) {
		for _, s := range shapes {
			switch {
			case s.IsPolygon():
				bucket.Polygons = append(bucket.Polygons, s)
			case s.IsBox():
				bucket.Boxes = append(bucket.Boxes, s)
			case s.IsPath():
				bucket.Paths = append(bucket.Paths, s)
			}
		}
	}
}
