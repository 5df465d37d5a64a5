// Package memdb is an in-memory layout engine implementing [layout.Database].
//
// A [Database] is a session: it is created by [Open] and ended by
// [Database.Close]. Cells and shapes handed out by a session must not be used
// after Close; database and cell methods then return
// [layout.ErrSessionClosed].
//
// Every cell in a memdb database is a top-level cell; there is no instance
// hierarchy.
package memdb

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/icview/pkg/layout"
)

// Database is an in-memory layout session.
type Database struct {
	id     uuid.UUID
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
	layers []layout.LayerInfo
	cells  []*Cell
	byName map[string]*Cell
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(db *Database) {
		if l != nil {
			db.logger = l
		}
	}
}

// Open starts a new empty session.
func Open(opts ...Option) *Database {
	db := &Database{
		id:     uuid.New(),
		logger: log.New(io.Discard),
		byName: make(map[string]*Cell),
	}
	for _, opt := range opts {
		opt(db)
	}
	db.logger.Debug("layout session opened", "session", db.id)
	return db
}

// ID returns the session identifier.
func (db *Database) ID() uuid.UUID { return db.id }

// Close ends the session. Calling Close twice is a no-op.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	db.closed = true
	db.logger.Debug("layout session closed", "session", db.id, "cells", len(db.cells), "layers", len(db.layers))
	return nil
}

// Closed reports whether Close has been called.
func (db *Database) Closed() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.closed
}

// =============================================================================
// Building
// =============================================================================

// AddLayer registers a layer and returns its handle. Registering an existing
// (layer, datatype) pair returns the existing handle and leaves its name
// untouched.
func (db *Database) AddLayer(info layout.LayerInfo) (layout.LayerIndex, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return 0, layout.ErrSessionClosed
	}
	if idx, ok := db.findLayerLocked(info.Layer, info.Datatype); ok {
		return idx, nil
	}
	db.layers = append(db.layers, info)
	return layout.LayerIndex(len(db.layers) - 1), nil
}

// AddCell creates a new empty cell.
func (db *Database) AddCell(name string) (*Cell, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil, layout.ErrSessionClosed
	}
	if name == "" {
		return nil, fmt.Errorf("add cell: empty name")
	}
	if _, ok := db.byName[name]; ok {
		return nil, fmt.Errorf("add cell %q: already exists", name)
	}
	c := &Cell{db: db, name: name, shapes: make(map[layout.LayerIndex][]*Shape)}
	db.cells = append(db.cells, c)
	db.byName[name] = c
	return c, nil
}

// =============================================================================
// layout.Database
// =============================================================================

// Cells returns every cell in creation order.
func (db *Database) Cells() ([]layout.Cell, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, layout.ErrSessionClosed
	}
	out := make([]layout.Cell, len(db.cells))
	for i, c := range db.cells {
		out[i] = c
	}
	return out, nil
}

// Cell looks up a cell by name.
func (db *Database) Cell(name string) (layout.Cell, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, layout.ErrSessionClosed
	}
	c, ok := db.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", layout.ErrCellNotFound, name)
	}
	return c, nil
}

// FindLayer resolves a (layer, datatype) pair.
func (db *Database) FindLayer(layer, datatype int) (layout.LayerIndex, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return 0, layout.ErrSessionClosed
	}
	idx, ok := db.findLayerLocked(layer, datatype)
	if !ok {
		return 0, fmt.Errorf("%w: %d/%d", layout.ErrLayerNotFound, layer, datatype)
	}
	return idx, nil
}

func (db *Database) findLayerLocked(layer, datatype int) (layout.LayerIndex, bool) {
	for i, info := range db.layers {
		if info.Layer == layer && info.Datatype == datatype {
			return layout.LayerIndex(i), true
		}
	}
	return 0, false
}

// Layers returns every layer handle in registration order.
func (db *Database) Layers() ([]layout.LayerIndex, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, layout.ErrSessionClosed
	}
	out := make([]layout.LayerIndex, len(db.layers))
	for i := range db.layers {
		out[i] = layout.LayerIndex(i)
	}
	return out, nil
}

// LayerInfo returns the identity record for idx.
func (db *Database) LayerInfo(idx layout.LayerIndex) (layout.LayerInfo, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return layout.LayerInfo{}, layout.ErrSessionClosed
	}
	if !db.validLocked(idx) {
		return layout.LayerInfo{}, fmt.Errorf("%w: index %d", layout.ErrLayerNotFound, idx)
	}
	return db.layers[idx], nil
}

// SetLayerInfo replaces the identity record for idx. Shapes stay attached to
// the handle, so renumbering a layer moves its shapes with it. Numbers held
// by another layer are rejected.
func (db *Database) SetLayerInfo(idx layout.LayerIndex, info layout.LayerInfo) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return layout.ErrSessionClosed
	}
	if !db.validLocked(idx) {
		return fmt.Errorf("%w: index %d", layout.ErrLayerNotFound, idx)
	}
	if owner, ok := db.findLayerLocked(info.Layer, info.Datatype); ok && owner != idx {
		return fmt.Errorf("%w: %d/%d belongs to %s", layout.ErrLayerExists, info.Layer, info.Datatype, db.layers[owner])
	}
	db.layers[idx] = info
	return nil
}

func (db *Database) validLocked(idx layout.LayerIndex) bool {
	return idx >= 0 && int(idx) < len(db.layers)
}

var _ layout.Database = (*Database)(nil)
