package render

import (
	"encoding/json"

	"github.com/matzehuels/alnglyph/pkg/glyph"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent string
	scores bool
}

// WithJSONCompact writes the layout on a single line.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = "" } }

// WithJSONNoScores drops the score rows, which dominate the output size.
func WithJSONNoScores() JSONOption { return func(r *jsonRenderer) { r.scores = false } }

// RenderJSON encodes a layout for external renderers. Colors are hex strings;
// empty score buckets carry no color.
func RenderJSON(l glyph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: "  ", scores: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.scores {
		l.Rows = nil
	}
	if r.indent == "" {
		return json.Marshal(l)
	}
	return json.MarshalIndent(l, "", r.indent)
}
