// Package io reads and writes the files icview works with.
//
// # Layout Descriptions
//
// A layout description lists layers and top-level cells with their shapes.
// It is loaded into a fresh [memdb.Database] session:
//
//	[[layers]]
//	name = "M1"
//	layer = 5
//	datatype = 0
//
//	[[cells]]
//	name = "TOP"
//	  [[cells.shapes]]
//	  layer = 5
//	  datatype = 0
//	  kind = "box"
//	  points = [[0, 0], [10, 10]]
//
// Shape kinds and their fields:
//   - box: points holds two opposite corners
//   - polygon: points holds the hull, holes holds zero or more hole contours
//   - path: points holds the spine, plus width, begin_ext and end_ext
//   - text: points holds the anchor, plus text
//
// Shapes may reference a layer/datatype pair that is not declared under
// layers. Such layers are created unnamed.
//
// The same structure is accepted as TOML, YAML or JSON. The format is picked
// from the file extension by [FormatFromPath].
//
// # Layer Maps
//
// A layer map assigns a purpose to layers by number:
//
//	[[layers]]
//	layer = 5
//	datatype = 0
//	purpose = "pin-drawing"
//	skip_labels = false
//
// skip_labels defaults to true. [ImportLayerMap] returns the entries as
// [icdata.LayerRule] values ready for [icdata.LoadLayoutData].
//
// # Edit Files
//
// An edit file lists attribute changes applied through [icdata.LayerData.Set]:
//
//	[[edit]]
//	layer = 5
//	datatype = 0
//	attr = "name"
//	value = "METAL1"
//
// Values keep their decoded type, so a string given for "index" is rejected
// with an INVALID_TYPE error rather than being coerced.
//
// # Snapshots
//
// [ExportSnapshot] writes the classified shapes of every loaded layer as
// JSON, keyed by layer name and then by cell name.
//
// [memdb.Database]: github.com/matzehuels/icview/pkg/layout/memdb.Database
// [icdata.LayerRule]: github.com/matzehuels/icview/pkg/icdata.LayerRule
// [icdata.LoadLayoutData]: github.com/matzehuels/icview/pkg/icdata.LoadLayoutData
// [icdata.LayerData.Set]: github.com/matzehuels/icview/pkg/icdata.LayerData.Set
package io
