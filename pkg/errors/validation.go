package errors

import (
	"strings"
	"unicode"
)

// GDSII stores layer and datatype numbers as unsigned 16-bit integers.
const (
	MaxLayerNumber    = 65535
	MaxDatatypeNumber = 65535
	maxCellNameLength = 1024
)

// ValidateCellName validates a cell name read from a layout description.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 1024 characters
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "cell name cannot be empty")
	}

	if len(name) > maxCellNameLength {
		return New(ErrCodeInvalidInput, "cell name too long (max %d characters)", maxCellNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "cell name %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// ValidateLayerNumber validates a (layer, datatype) pair against the GDSII
// numeric range.
func ValidateLayerNumber(layer, datatype int) error {
	if layer < 0 || layer > MaxLayerNumber {
		return New(ErrCodeInvalidInput, "layer number %d out of range [0, %d]", layer, MaxLayerNumber)
	}
	if datatype < 0 || datatype > MaxDatatypeNumber {
		return New(ErrCodeInvalidInput, "datatype %d out of range [0, %d]", datatype, MaxDatatypeNumber)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
