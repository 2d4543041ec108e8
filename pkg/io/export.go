package io

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/score"
)

var statusToString = map[aln.ReadStatus]string{
	aln.ReadPCRDuplicate: "pcr_duplicate",
	aln.ReadPoorQuality:  "poor_quality",
}

type file struct {
	ID          string     `toml:"id"`
	Anchor      int        `toml:"anchor"`
	Negative    bool       `toml:"negative,omitempty"`
	Status      string     `toml:"status,omitempty"`
	Averageable bool       `toml:"averageable,omitempty"`
	Display     Display    `toml:"display"`
	Rows        []fileRow  `toml:"rows"`
	Exons       []aln.Exon `toml:"exons,omitempty"`
}

type fileRow struct {
	BaseWidth int            `toml:"base_width"`
	Strand    string         `toml:"strand"`
	Native    coord.Range    `toml:"native"`
	AlnFrom   int            `toml:"aln_from,omitempty"`
	Circular  int            `toml:"circular,omitempty"`
	Tails     *fileTails     `toml:"tails,omitempty"`
	Segments  []aln.Segment  `toml:"segments,omitempty"`
	Scores    []score.Sample `toml:"scores,omitempty"`
}

type fileTails struct {
	Five         int  `toml:"five,omitempty"`
	Three        int  `toml:"three,omitempty"`
	VisibleFive  int  `toml:"visible_five,omitempty"`
	VisibleThree int  `toml:"visible_three,omitempty"`
	PolyAFive    bool `toml:"polya_five,omitempty"`
	PolyAThree   bool `toml:"polya_three,omitempty"`
}

func (t *fileTails) tails() aln.Tails {
	if t == nil {
		return aln.Tails{}
	}
	return aln.Tails{
		Five:         t.Five,
		Three:        t.Three,
		VisibleFive:  t.VisibleFive,
		VisibleThree: t.VisibleThree,
		PolyAFive:    t.PolyAFive,
		PolyAThree:   t.PolyAThree,
	}
}

func toFileTails(t aln.Tails) *fileTails {
	if t == (aln.Tails{}) {
		return nil
	}
	return &fileTails{
		Five:         t.Five,
		Three:        t.Three,
		VisibleFive:  t.VisibleFive,
		VisibleThree: t.VisibleThree,
		PolyAFive:    t.PolyAFive,
		PolyAThree:   t.PolyAThree,
	}
}

// WriteAlignment encodes d as TOML and writes it to w.
// The output can be re-read with [ReadAlignment] and yields the same
// document.
func WriteAlignment(d *Document, w io.Writer) error {
	if d == nil || d.Source == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to write")
	}
	src := d.Source
	out := file{
		ID:          src.Name,
		Anchor:      src.AnchorRow,
		Negative:    src.Negative,
		Status:      statusToString[src.Status],
		Averageable: d.Scores.Averages,
		Display:     d.Display,
		Rows:        make([]fileRow, len(src.Rows)),
		Exons:       src.ExonList,
	}
	for i, r := range src.Rows {
		out.Rows[i] = fileRow{
			BaseWidth: r.Meta.Width(),
			Strand:    r.Meta.Strand.String(),
			Native:    r.Meta.Native,
			AlnFrom:   r.Meta.AlnFrom,
			Circular:  r.Meta.Circular,
			Tails:     toFileTails(r.Tails),
			Segments:  r.Segments,
			Scores:    d.Scores.Rows[i],
		}
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode")
	}
	return nil
}

// ExportAlignment writes d to a TOML file at path.
func ExportAlignment(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteAlignment(d, f)
}
