// Package layout defines the contract icview requires from an IC layout
// engine.
//
// The engine owns cells, layers and shapes. icview never copies engine
// objects: every [Cell], [Shape] and [Polygon] handed out by a [Database] is a
// live reference that stays valid only while the engine session that produced
// it is open. Implementations report use after close with [ErrSessionClosed].
//
// # Contract
//
// A [Database] supports:
//   - enumerating top-level cells ([Database.Cells])
//   - looking up a cell by name ([Database.Cell])
//   - resolving a (layer number, datatype) pair to an internal [LayerIndex]
//     ([Database.FindLayer])
//   - reading and writing the per-layer [LayerInfo] record
//
// A [Cell] enumerates the shapes on one layer and reports its bounding box.
// A [Shape] answers kind predicates and kind-specific data. Asking a box for
// its path width is undefined: implementations may return zero values.
//
// The in-memory implementation lives in package memdb.
package layout
