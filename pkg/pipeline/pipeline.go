// Package pipeline provides the load → layout → render pipeline behind the
// alnglyph command.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a TOML alignment description
//  2. Layout: Run the glyph engine over the visible range
//  3. Render: Generate output in the requested formats (SVG, JSON, text)
//
// Layouts and artifacts are cached by content hash, so re-rendering an
// unchanged file with the same options is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "tp53.toml",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	in, err := runner.Load(ctx, opts)
//	layout, err := runner.ComputeLayout(ctx, in, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	alnio "github.com/matzehuels/alnglyph/pkg/io"
	"github.com/matzehuels/alnglyph/pkg/score"
	"github.com/matzehuels/alnglyph/pkg/tail"
)

const (
	// DefaultWidth is the default width of the visible range in pixels.
	DefaultWidth = 800.0

	// DefaultTailMode is the default tail display mode.
	DefaultTailMode = "glyph"

	// DefaultColumns is the default width of the text preview in cells.
	DefaultColumns = 80
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatText: true,
}

// Options contains all configuration for the pipeline.
// Zero layout fields are filled from the file's [display] table, then from
// the package defaults.
type Options struct {
	// Load options
	Path string `json:"path"`

	// Layout options
	Width       float64 `json:"width,omitempty"`
	Buckets     int     `json:"buckets,omitempty"`
	VisibleFrom int     `json:"visible_from,omitempty"`
	VisibleTo   int     `json:"visible_to,omitempty"`
	TailMode    string  `json:"tail_mode,omitempty"`
	BarHeight   float64 `json:"bar_height,omitempty"`
	Low         string  `json:"low,omitempty"`
	High        string  `json:"high,omitempty"`
	Insertion   string  `json:"insertion,omitempty"`
	Unavailable string  `json:"unavailable,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	RowHeight float64  `json:"row_height,omitempty"`
	NoScores  bool     `json:"no_scores,omitempty"`
	Columns   int      `json:"columns,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Input     *Input
	Layout    glyph.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Intervals  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDisplay fills zero layout fields from a file's display table.
func (o *Options) ApplyDisplay(d alnio.Display) {
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Buckets == 0 {
		o.Buckets = d.Buckets
	}
	if o.VisibleFrom == 0 && o.VisibleTo == 0 {
		o.VisibleFrom, o.VisibleTo = d.VisibleFrom, d.VisibleTo
	}
	if o.TailMode == "" {
		o.TailMode = d.TailMode
	}
	if o.BarHeight == 0 {
		o.BarHeight = d.BarHeight
	}
	for _, c := range []struct {
		dst *string
		src string
	}{
		{&o.Low, d.Low},
		{&o.High, d.High},
		{&o.Insertion, d.Insertion},
		{&o.Unavailable, d.Unavailable},
	} {
		if *c.dst == "" {
			*c.dst = c.src
		}
	}
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.TailMode == "" {
		o.TailMode = DefaultTailMode
	}
	if o.BarHeight == 0 {
		o.BarHeight = glyph.DefaultBarHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %g", o.Width)
	}
	if o.Buckets < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "buckets must not be negative, got %d", o.Buckets)
	}
	if o.VisibleTo != 0 && o.VisibleTo < o.VisibleFrom {
		return errors.New(errors.ErrCodeRangeMismatch, "visible range %d-%d is decreasing", o.VisibleFrom, o.VisibleTo)
	}
	if _, err := tail.ParseMode(o.TailMode); err != nil {
		return err
	}
	_, err := o.Policy()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Mode returns the parsed tail mode.
func (o *Options) Mode() tail.Mode {
	m, _ := tail.ParseMode(o.TailMode)
	return m
}

// Policy builds the score color policy from the color options.
func (o *Options) Policy() (score.ColorPolicy, error) {
	p, err := score.ParsePolicy(o.Low, o.High, o.Insertion, o.Unavailable)
	if err != nil {
		return score.ColorPolicy{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "colors")
	}
	return p, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Buckets:     o.Buckets,
		VisibleFrom: o.VisibleFrom,
		VisibleTo:   o.VisibleTo,
		TailMode:    o.TailMode,
		BarHeight:   o.BarHeight,
		Palette:     strings.Join([]string{o.Low, o.High, o.Insertion, o.Unavailable}, ","),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, NoScores: o.NoScores}
	switch format {
	case FormatSVG:
		k.RowHeight = o.RowHeight
	case FormatText:
		k.Columns = o.Columns
	}
	return k
}
