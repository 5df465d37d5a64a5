package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
)

// Edit changes one attribute of the layer numbered Layer/Datatype. Value
// keeps the type it was decoded with.
type Edit struct {
	Layer    int    `toml:"layer" yaml:"layer" json:"layer"`
	Datatype int    `toml:"datatype" yaml:"datatype" json:"datatype"`
	Attr     string `toml:"attr" yaml:"attr" json:"attr"`
	Value    any    `toml:"value" yaml:"value" json:"value"`
}

func (e Edit) String() string {
	return fmt.Sprintf("%d/%d %s=%v", e.Layer, e.Datatype, e.Attr, e.Value)
}

type editFile struct {
	Edits []Edit `toml:"edit" yaml:"edit" json:"edit"`
}

// ReadEdits decodes an edit file from r. JSON integer literals are decoded
// as int64 to match TOML; other JSON numbers stay float64.
func ReadEdits(r io.Reader, f Format) ([]Edit, error) {
	var file editFile
	if err := decode(r, f, &file); err != nil {
		return nil, err
	}
	for i := range file.Edits {
		if n, ok := file.Edits[i].Value.(json.Number); ok {
			file.Edits[i].Value = jsonNumber(n)
		}
	}
	return file.Edits, nil
}

func jsonNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// ImportEdits reads the edit file at path.
func ImportEdits(path string) ([]Edit, error) {
	f, format, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	edits, err := ReadEdits(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edits, nil
}

// EditResult is the outcome of applying one edit.
type EditResult struct {
	Edit Edit
	Err  error
}

// ApplyEdits applies edits in order to the matching layers of d. A failed
// edit does not stop the remaining ones. Edits are matched against the
// layer numbers current at the time they run, so an edit that renumbers a
// layer affects which later edits match.
func ApplyEdits(d *icdata.LayoutData, edits []Edit) []EditResult {
	results := make([]EditResult, len(edits))
	for i, e := range edits {
		results[i] = EditResult{Edit: e, Err: applyEdit(d, e)}
	}
	return results
}

func applyEdit(d *icdata.LayoutData, e Edit) error {
	for _, l := range d.Layers() {
		if l.Index() == e.Layer && l.DataType() == e.Datatype {
			return l.Set(e.Attr, e.Value)
		}
	}
	return errors.New(errors.ErrCodeLayerNotFound, "no loaded layer %d/%d", e.Layer, e.Datatype)
}
