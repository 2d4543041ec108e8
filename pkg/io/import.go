package io

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

var statusFromString = map[string]aln.ReadStatus{
	"":              aln.ReadOK,
	"ok":            aln.ReadOK,
	"pcr_duplicate": aln.ReadPCRDuplicate,
	"poor_quality":  aln.ReadPoorQuality,
}

// Document is a decoded alignment description.
type Document struct {
	Source  *aln.Memory
	Scores  score.SliceProvider
	Display Display
}

// Alignment wraps the document's source as a pairwise or multiple alignment.
func (d *Document) Alignment() aln.Alignment { return aln.New(d.Source) }

// Provider returns the document's scores, or nil when no row has any.
func (d *Document) Provider() score.Provider {
	if len(d.Scores.Rows) == 0 {
		return nil
	}
	return d.Scores
}

// Display holds the rendering defaults stored alongside an alignment.
// Zero fields mean "use the caller's default".
type Display struct {
	TailMode    string  `toml:"tail_mode,omitempty"`
	Width       float64 `toml:"width,omitempty"`
	Buckets     int     `toml:"buckets,omitempty"`
	BarHeight   float64 `toml:"bar_height,omitempty"`
	VisibleFrom int     `toml:"visible_from,omitempty"`
	VisibleTo   int     `toml:"visible_to,omitempty"`
	Low         string  `toml:"low,omitempty"`
	High        string  `toml:"high,omitempty"`
	Insertion   string  `toml:"insertion,omitempty"`
	Unavailable string  `toml:"unavailable,omitempty"`
}

// Mode parses TailMode, defaulting to [tail.ShowGlyph].
func (d Display) Mode() (tail.Mode, error) {
	if d.TailMode == "" {
		return tail.ShowGlyph, nil
	}
	return tail.ParseMode(d.TailMode)
}

// Visible returns the stored anchor viewport; empty means the whole anchor.
func (d Display) Visible() coord.Range { return coord.R(d.VisibleFrom, d.VisibleTo) }

// Policy builds the score color policy from the display colors.
func (d Display) Policy() (score.ColorPolicy, error) {
	p, err := score.ParsePolicy(d.Low, d.High, d.Insertion, d.Unavailable)
	if err != nil {
		return score.ColorPolicy{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "display colors")
	}
	return p, nil
}

// ReadAlignment decodes a TOML alignment description from r.
//
// The input names the alignment, its anchor row and every row's aligned
// segments:
//
//	id = "NM_000546:chr17"
//	anchor = 0
//
//	[[rows]]
//	native = { from = 7668401, to = 7687550 }
//
//	[[rows]]
//	strand = "-"
//	native = { from = 0, to = 2512 }
//	[[rows.segments]]
//	aln = { from = 0, to = 102 }
//	row = { from = 2410, to = 2512 }
//
// Optional tables: rows.tails, rows.scores, exons and display.
//
// ReadAlignment returns an INVALID_FORMAT error when the TOML is malformed,
// contains unknown keys or names an unknown status, tail mode or color, and
// an INVALID_INPUT error when row metadata or splice sites are invalid.
// Segment order is not checked here; malformed segment streams degrade the
// affected row at layout time. ReadAlignment does not close r.
func ReadAlignment(r io.Reader) (*Document, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(names, ", "))
	}
	return f.document()
}

// ImportAlignment reads a TOML alignment description from path.
//
// A missing file yields a FILE_NOT_FOUND error; decoding failures are the
// same as for [ReadAlignment].
func ImportAlignment(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadAlignment(f)
}

func (f file) document() (*Document, error) {
	if f.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing alignment id")
	}
	if len(f.Rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "alignment %s: need an anchor and at least one aligned row, got %d rows", f.ID, len(f.Rows))
	}
	if f.Anchor < 0 || f.Anchor >= len(f.Rows) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "alignment %s: anchor %d out of range", f.ID, f.Anchor)
	}
	status, ok := statusFromString[f.Status]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "alignment %s: unknown status %q", f.ID, f.Status)
	}
	if _, err := f.Display.Mode(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "alignment %s", f.ID)
	}
	if _, err := f.Display.Policy(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "alignment %s", f.ID)
	}

	doc := &Document{
		Source: &aln.Memory{
			Name:      f.ID,
			AnchorRow: f.Anchor,
			Rows:      make([]aln.MemoryRow, len(f.Rows)),
			ExonList:  f.Exons,
			Negative:  f.Negative,
			Status:    status,
		},
		Scores:  score.SliceProvider{Averages: f.Averageable},
		Display: f.Display,
	}
	for i, fr := range f.Rows {
		meta := coord.Row{
			Index:     i,
			BaseWidth: fr.BaseWidth,
			Strand:    coord.ParseStrand(fr.Strand),
			Native:    fr.Native,
			AlnFrom:   fr.AlnFrom,
			Circular:  fr.Circular,
		}
		if meta.BaseWidth == 0 {
			meta.BaseWidth = 1
		}
		if err := errors.ValidateRow(meta); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "alignment %s", f.ID)
		}
		doc.Source.Rows[i] = aln.MemoryRow{Meta: meta, Segments: fr.Segments, Tails: fr.Tails.tails()}
		if len(fr.Scores) > 0 {
			if doc.Scores.Rows == nil {
				doc.Scores.Rows = make(map[int][]score.Sample)
			}
			doc.Scores.Rows[i] = fr.Scores
		}
	}
	for i, ex := range f.Exons {
		for _, site := range []string{ex.Acceptor, ex.Donor} {
			if err := errors.ValidateDinucleotide(site); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "alignment %s: exon %d", f.ID, i)
			}
		}
	}
	return doc, nil
}
