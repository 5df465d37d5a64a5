// Package icdata is a read-mostly facade over an IC layout engine.
//
// It adapts the engine's cells, layers and shapes (package layout) into:
//
//   - [BoxView], [PathView], [PolygonView]: read-only views over one engine
//     shape, forwarding every property to the engine
//   - [CellShapes]: the classified shapes of one layer in one cell
//   - [LayerData]: a layer's identity (name, layer number, datatype), its
//     [Purpose] and a cached classification of its shapes per cell
//   - [CellData]: the classified shapes of one cell grouped by layer name
//   - [LayoutData]: a list of layers paired with a list of cells
//
// # Classification
//
// A layer's purpose selects which rules run over its shapes. The rules are
// independent, so a "pin-drawing" layer runs both:
//
//   - pin: box centers become [x, y] pins; polygons are ignored
//   - net: every shape is recorded as a net shape
//   - drawing: polygons, boxes and paths go to their own lists
//   - labels: text shapes are collected unless SkipLabels is set
//
// Every top-level cell gets a bucket, empty or not.
//
// # Caching
//
// [LayerData.Shapes] classifies on first use and then serves the cached
// result. The cache does not track engine changes: call
// [LayerData.Refresh] after mutating the layout, or [LayerData.Invalidate]
// to defer the work to the next read.
//
// # Lifetime
//
// Views and shape lists are borrowed from the engine session. They are valid
// only while that session is open.
package icdata
