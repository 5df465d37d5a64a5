package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/icview/pkg/errors"
)

// Format is a serialization format for description files.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat maps a format name (case-insensitive, "yml" allowed) to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want toml, yaml or json)", s)
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeUnsupported, "cannot infer format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

func decode(r io.Reader, f Format, v any) error {
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(v)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

func encode(w io.Writer, f Format, v any) error {
	var err error
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

func openFile(path string) (*os.File, Format, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, format, nil
}

func createFile(path string, write func(io.Writer, Format) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
