package pipeline

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(l glyph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = render.RenderJSON(l, buildJSONOptions(opts)...)
		case FormatText:
			data = []byte(renderText(l, opts) + "\n")
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []render.SVGOption {
	var out []render.SVGOption
	if opts.RowHeight > 0 {
		out = append(out, render.WithRowHeight(opts.RowHeight))
	}
	if opts.NoScores {
		out = append(out, render.WithoutScores())
	}
	return out
}

func buildJSONOptions(opts Options) []render.JSONOption {
	if opts.NoScores {
		return []render.JSONOption{render.WithJSONNoScores()}
	}
	return nil
}

// renderText draws the plain-text preview stored as an artifact. The
// renderer writes to a non-terminal, so no color codes are emitted.
func renderText(l glyph.Layout, opts Options) string {
	if opts.NoScores {
		l.Rows = nil
	}
	return render.RenderText(l,
		render.WithColumns(opts.Columns),
		render.WithRenderer(lipgloss.NewRenderer(io.Discard)))
}
