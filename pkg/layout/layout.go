package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by engine implementations.
var (
	// ErrSessionClosed is returned for any call made after the session ended.
	ErrSessionClosed = errors.New("layout session closed")

	// ErrCellNotFound is returned when a cell name is unknown.
	ErrCellNotFound = errors.New("cell not found")

	// ErrLayerNotFound is returned when a layer index or (layer, datatype)
	// pair is unknown.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrLayerExists is returned when a layer would take a (layer, datatype)
	// pair already held by another layer.
	ErrLayerExists = errors.New("layer number in use")
)

// LayerIndex is the engine's internal handle for a layer.
type LayerIndex int

// LayerInfo is the engine's per-layer identity record.
type LayerInfo struct {
	Name     string `json:"name" toml:"name" yaml:"name"`
	Layer    int    `json:"layer" toml:"layer" yaml:"layer"`
	Datatype int    `json:"datatype" toml:"datatype" yaml:"datatype"`
}

// String renders the record as "name (layer/datatype)".
func (i LayerInfo) String() string {
	if i.Name == "" {
		return fmt.Sprintf("%d/%d", i.Layer, i.Datatype)
	}
	return fmt.Sprintf("%s (%d/%d)", i.Name, i.Layer, i.Datatype)
}

// Database is a handle on one open layout.
type Database interface {
	// Cells returns the top-level cells in a stable order.
	Cells() ([]Cell, error)

	// Cell looks up a cell by name.
	Cell(name string) (Cell, error)

	// FindLayer resolves a layer number and datatype to a layer handle.
	FindLayer(layer, datatype int) (LayerIndex, error)

	// Layers returns every layer handle known to the database.
	Layers() ([]LayerIndex, error)

	// LayerInfo returns the identity record for idx.
	LayerInfo(idx LayerIndex) (LayerInfo, error)

	// SetLayerInfo replaces the identity record for idx. A (layer, datatype)
	// pair held by another layer is rejected with ErrLayerExists.
	SetLayerInfo(idx LayerIndex, info LayerInfo) error
}

// Cell is a named container of shapes.
type Cell interface {
	Name() string

	// Shapes returns the shapes placed on layer idx, in insertion order.
	Shapes(idx LayerIndex) ([]Shape, error)

	// BBox returns the bounding box over every layer of the cell.
	BBox() (Box, error)
}
