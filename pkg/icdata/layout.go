package icdata

import "github.com/matzehuels/icview/pkg/layout"

// DefaultPurpose is assigned to every layer when no layer rules are given.
const DefaultPurpose = "drawing"

// LayoutData pairs a list of layers with a list of cells. The two lists are
// not cross-checked.
type LayoutData struct {
	db     layout.Database
	layers []*LayerData
	cells  []*CellData
}

// NewLayoutData returns a container over db.
func NewLayoutData(db layout.Database, layers []*LayerData, cells []*CellData) *LayoutData {
	return &LayoutData{db: db, layers: layers, cells: cells}
}

// Database returns the engine the container was built for.
func (d *LayoutData) Database() layout.Database { return d.db }

func (d *LayoutData) Layers() []*LayerData          { return d.layers }
func (d *LayoutData) SetLayers(layers []*LayerData) { d.layers = layers }
func (d *LayoutData) Cells() []*CellData            { return d.cells }
func (d *LayoutData) SetCells(cells []*CellData)    { d.cells = cells }

// Layer returns the first layer called name.
func (d *LayoutData) Layer(name string) (*LayerData, bool) {
	for _, l := range d.layers {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// Cell returns the first cell called name.
func (d *LayoutData) Cell(name string) (*CellData, bool) {
	for _, c := range d.cells {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// LayerRule assigns a purpose to the engine layer numbered Layer/Datatype.
type LayerRule struct {
	Layer      int
	Datatype   int
	Purpose    string
	SkipLabels bool
}

// CollectCells builds one CellData per top-level engine cell from the
// classified shapes of layers. Every layer is registered on every cell,
// even when its bucket is empty.
func CollectCells(db layout.Database, layers []*LayerData) ([]*CellData, error) {
	cells, err := db.Cells()
	if err != nil {
		return nil, engineError(err, "collect cells")
	}
	out := make([]*CellData, len(cells))
	for i, c := range cells {
		out[i] = NewCellData(db, c.Name())
	}
	for _, l := range layers {
		shapes, err := l.Shapes()
		if err != nil {
			return nil, err
		}
		for _, cd := range out {
			cd.AddLayer(l.Name(), shapes[cd.Name()])
		}
	}
	return out, nil
}

// LoadLayoutData builds a LayerData for every engine layer matched by rules
// and collects the cells. With no rules every layer is loaded with
// DefaultPurpose. opts apply to every layer after the rule's settings.
func LoadLayoutData(db layout.Database, rules []LayerRule, opts ...LayerOption) (*LayoutData, error) {
	indices, err := db.Layers()
	if err != nil {
		return nil, engineError(err, "load layout")
	}

	var layers []*LayerData
	for _, idx := range indices {
		info, err := db.LayerInfo(idx)
		if err != nil {
			return nil, engineError(err, "load layout")
		}
		rule, ok := matchRule(rules, info)
		if !ok {
			continue
		}
		layerOpts := append([]LayerOption{WithSkipLabels(rule.SkipLabels)}, opts...)
		layers = append(layers, NewLayerData(db, info.Name, info.Layer, info.Datatype, rule.Purpose, layerOpts...))
	}

	cells, err := CollectCells(db, layers)
	if err != nil {
		return nil, err
	}
	return NewLayoutData(db, layers, cells), nil
}

func matchRule(rules []LayerRule, info layout.LayerInfo) (LayerRule, bool) {
	if len(rules) == 0 {
		return LayerRule{Layer: info.Layer, Datatype: info.Datatype, Purpose: DefaultPurpose, SkipLabels: true}, true
	}
	for _, r := range rules {
		if r.Layer == info.Layer && r.Datatype == info.Datatype {
			return r, true
		}
	}
	return LayerRule{}, false
}
