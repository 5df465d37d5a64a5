package icdata

import "strings"

// Purpose is a set of classification tags decided when a layer is built.
type Purpose uint8

// Purpose tags.
const (
	PurposeDrawing Purpose = 1 << iota
	PurposePin
	PurposeNet
)

// PurposeNone is the empty tag set.
const PurposeNone Purpose = 0

var purposeTags = []struct {
	tag  Purpose
	word string
}{
	{PurposeDrawing, "drawing"},
	{PurposePin, "pin"},
	{PurposeNet, "net"},
}

// ParsePurpose scans free text for the words "drawing", "pin" and "net",
// ignoring case. Words may overlap: "pin-drawing" yields both tags.
func ParsePurpose(s string) Purpose {
	lower := strings.ToLower(s)
	var p Purpose
	for _, t := range purposeTags {
		if strings.Contains(lower, t.word) {
			p |= t.tag
		}
	}
	return p
}

// Has reports whether every tag in t is set.
func (p Purpose) Has(t Purpose) bool {
	return t != 0 && p&t == t
}

// String joins the set tags with "-" in drawing, pin, net order.
func (p Purpose) String() string {
	var words []string
	for _, t := range purposeTags {
		if p.Has(t.tag) {
			words = append(words, t.word)
		}
	}
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, "-")
}
