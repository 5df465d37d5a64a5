package icdata

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/layout"
	"github.com/matzehuels/icview/pkg/observability"
)

// Attribute names accepted by LayerData.Set.
const (
	AttrName       = "name"
	AttrIndex      = "index"
	AttrDataType   = "data_type"
	AttrPurpose    = "purpose"
	AttrSkipLabels = "skip_labels"
)

// LayerData is one engine layer: its identity, its purpose and a cached
// classification of its shapes per top-level cell.
//
// A LayerData is owned by a single caller; it performs no locking.
type LayerData struct {
	db     layout.Database
	logger *log.Logger

	name        string
	index       int
	dataType    int
	purposeText string
	purpose     Purpose
	skipLabels  bool

	shapes map[string]*CellShapes
	cached bool
}

// LayerOption configures a LayerData.
type LayerOption func(*LayerData)

// WithSkipLabels controls whether text shapes are collected. Labels are
// skipped by default.
func WithSkipLabels(skip bool) LayerOption {
	return func(l *LayerData) { l.skipLabels = skip }
}

// WithLogger sets the logger used for classification and edit events.
func WithLogger(logger *log.Logger) LayerOption {
	return func(l *LayerData) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLayerData returns a layer bound to db. index and dataType are the
// layer's GDS numbers; purpose is parsed once with ParsePurpose.
func NewLayerData(db layout.Database, name string, index, dataType int, purpose string, opts ...LayerOption) *LayerData {
	l := &LayerData{
		db:          db,
		logger:      log.New(io.Discard),
		name:        name,
		index:       index,
		dataType:    dataType,
		purposeText: purpose,
		purpose:     ParsePurpose(purpose),
		skipLabels:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Database returns the engine the layer is bound to.
func (l *LayerData) Database() layout.Database { return l.db }

func (l *LayerData) Name() string { return l.name }

// Index returns the GDS layer number.
func (l *LayerData) Index() int { return l.index }

// DataType returns the GDS datatype number.
func (l *LayerData) DataType() int { return l.dataType }

// Purpose returns the parsed tag set.
func (l *LayerData) Purpose() Purpose { return l.purpose }

// PurposeText returns the purpose as given by the caller.
func (l *LayerData) PurposeText() string { return l.purposeText }

func (l *LayerData) SkipLabels() bool { return l.skipLabels }

// String renders the layer as "name (layer/datatype)".
func (l *LayerData) String() string {
	return layout.LayerInfo{Name: l.name, Layer: l.index, Datatype: l.dataType}.String()
}

// =============================================================================
// Identity mutation
// =============================================================================

// SetName renames the layer in the engine, then locally.
func (l *LayerData) SetName(name string) error {
	return l.writeInfo(AttrName, func(info *layout.LayerInfo) { info.Name = name }, func() { l.name = name })
}

// SetIndex renumbers the layer in the engine, then locally. The number must
// be a valid GDS layer number not already used with this datatype.
func (l *LayerData) SetIndex(index int) error {
	return l.writeInfo(AttrIndex, func(info *layout.LayerInfo) { info.Layer = index }, func() { l.index = index })
}

// SetDataType changes the layer's datatype in the engine, then locally.
func (l *LayerData) SetDataType(dataType int) error {
	return l.writeInfo(AttrDataType, func(info *layout.LayerInfo) { info.Datatype = dataType }, func() { l.dataType = dataType })
}

// SetPurpose replaces the purpose and drops the shape cache.
func (l *LayerData) SetPurpose(purpose string) {
	l.purposeText = purpose
	l.purpose = ParsePurpose(purpose)
	l.Invalidate()
}

// SetSkipLabels changes label collection and drops the shape cache.
func (l *LayerData) SetSkipLabels(skip bool) {
	if l.skipLabels == skip {
		return
	}
	l.skipLabels = skip
	l.Invalidate()
}

// Set assigns a dynamically typed value to attr. A value of the wrong type
// returns an ErrCodeInvalidType error and changes nothing; engine failures
// are returned as they come.
func (l *LayerData) Set(attr string, value any) error {
	var err error
	switch attr {
	case AttrName:
		s, ok := value.(string)
		if !ok {
			err = errors.InvalidType(attr, "a string", value)
			break
		}
		return l.SetName(s)
	case AttrIndex, "layer":
		n, ok := toInt(value)
		if !ok {
			err = errors.InvalidType(attr, "an integer", value)
			break
		}
		return l.SetIndex(n)
	case AttrDataType, "datatype":
		n, ok := toInt(value)
		if !ok {
			err = errors.InvalidType(attr, "an integer", value)
			break
		}
		return l.SetDataType(n)
	case AttrPurpose:
		s, ok := value.(string)
		if !ok {
			err = errors.InvalidType(attr, "a string", value)
			break
		}
		l.SetPurpose(s)
	case AttrSkipLabels:
		b, ok := value.(bool)
		if !ok {
			err = errors.InvalidType(attr, "a bool", value)
			break
		}
		l.SetSkipLabels(b)
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "unknown layer attribute %q", attr)
	}
	observability.Edit().OnLayerEdit(l.name, attr, err)
	return err
}

// writeInfo reads the engine record for the current (layer, datatype),
// applies mutate, writes it back and only then runs commit. New layer numbers
// must be in range and not held by another engine layer.
func (l *LayerData) writeInfo(attr string, mutate func(*layout.LayerInfo), commit func()) (err error) {
	name := l.name
	defer func() {
		observability.Edit().OnLayerEdit(name, attr, err)
	}()

	idx, err := l.db.FindLayer(l.index, l.dataType)
	if err != nil {
		return engineError(err, "set %s on layer %s", attr, l)
	}
	info, err := l.db.LayerInfo(idx)
	if err != nil {
		return engineError(err, "set %s on layer %s", attr, l)
	}
	before := info
	mutate(&info)
	if info.Layer != before.Layer || info.Datatype != before.Datatype {
		if err := errors.ValidateLayerNumber(info.Layer, info.Datatype); err != nil {
			return err
		}
		if owner, err := l.db.FindLayer(info.Layer, info.Datatype); err == nil && owner != idx {
			return errors.Wrap(errors.ErrCodeInvalidInput, layout.ErrLayerExists,
				"set %s on layer %s: %d/%d is taken", attr, l, info.Layer, info.Datatype)
		}
	}
	if err := l.db.SetLayerInfo(idx, info); err != nil {
		return engineError(err, "set %s on layer %s", attr, l)
	}
	commit()
	l.logger.Debug("layer updated", "attr", attr, "layer", l.String())
	return nil
}

// toInt accepts any integer kind that fits in an int. Floats are rejected,
// even when integral.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
