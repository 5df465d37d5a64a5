package io

import (
	"fmt"
	"io"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
)

// LayerMap is the on-disk form of a layer map.
type LayerMap struct {
	Layers []LayerMapEntry `toml:"layers" yaml:"layers" json:"layers"`
}

// LayerMapEntry assigns a purpose to one layer/datatype pair. A nil
// SkipLabels means true.
type LayerMapEntry struct {
	Layer      int    `toml:"layer" yaml:"layer" json:"layer"`
	Datatype   int    `toml:"datatype" yaml:"datatype" json:"datatype"`
	Purpose    string `toml:"purpose" yaml:"purpose" json:"purpose"`
	SkipLabels *bool  `toml:"skip_labels,omitempty" yaml:"skip_labels,omitempty" json:"skip_labels,omitempty"`
}

// Rules converts the entries to layer rules. Entries are validated and a
// repeated layer/datatype pair is rejected.
func (m LayerMap) Rules() ([]icdata.LayerRule, error) {
	seen := make(map[[2]int]bool, len(m.Layers))
	rules := make([]icdata.LayerRule, 0, len(m.Layers))
	for i, e := range m.Layers {
		if err := errors.ValidateLayerNumber(e.Layer, e.Datatype); err != nil {
			return nil, fmt.Errorf("layer map entry %d: %w", i, err)
		}
		key := [2]int{e.Layer, e.Datatype}
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layer map entry %d: %d/%d mapped twice", i, e.Layer, e.Datatype)
		}
		seen[key] = true

		skip := true
		if e.SkipLabels != nil {
			skip = *e.SkipLabels
		}
		rules = append(rules, icdata.LayerRule{
			Layer:      e.Layer,
			Datatype:   e.Datatype,
			Purpose:    e.Purpose,
			SkipLabels: skip,
		})
	}
	return rules, nil
}

// ReadLayerMap decodes a layer map from r.
func ReadLayerMap(r io.Reader, f Format) ([]icdata.LayerRule, error) {
	var m LayerMap
	if err := decode(r, f, &m); err != nil {
		return nil, err
	}
	return m.Rules()
}

// ImportLayerMap reads the layer map file at path.
func ImportLayerMap(path string) ([]icdata.LayerRule, error) {
	f, format, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rules, err := ReadLayerMap(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}
