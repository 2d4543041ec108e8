package pipeline

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/errors"
	alnio "github.com/matzehuels/alnglyph/pkg/io"
	"github.com/matzehuels/alnglyph/pkg/observability"
)

var fixture = filepath.Join("testdata", "spliced.toml")

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"txt", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Invalid format should fail with INVALID_INPUT, got %v", err)
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestApplyDisplay(t *testing.T) {
	opts := Options{Width: 500, High: "#000000"}
	opts.ApplyDisplay(alnio.Display{
		TailMode:    "sequence",
		Width:       300,
		Buckets:     64,
		VisibleFrom: 10,
		VisibleTo:   90,
		Low:         "#ffffff",
		High:        "#ff0000",
	})

	if opts.Width != 500 {
		t.Errorf("Width = %g, flag value should win", opts.Width)
	}
	if opts.Buckets != 64 || opts.TailMode != "sequence" {
		t.Errorf("display values not applied: %+v", opts)
	}
	if opts.VisibleFrom != 10 || opts.VisibleTo != 90 {
		t.Errorf("visible = %d-%d, want 10-90", opts.VisibleFrom, opts.VisibleTo)
	}
	if opts.Low != "#ffffff" || opts.High != "#000000" {
		t.Errorf("colors = %s/%s", opts.Low, opts.High)
	}
}

func TestValidateForLayout(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("zero options: %v", err)
	}
	if opts.Width != DefaultWidth || opts.TailMode != DefaultTailMode || opts.Logger == nil {
		t.Errorf("defaults not set: %+v", opts)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"negative buckets", Options{Buckets: -1}, errors.ErrCodeInvalidInput},
		{"decreasing range", Options{VisibleFrom: 50, VisibleTo: 10}, errors.ErrCodeRangeMismatch},
		{"tail mode", Options{TailMode: "sideways"}, errors.ErrCodeInvalidMode},
		{"color", Options{Low: "blue-ish"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{RowHeight: 4, Columns: 120, NoScores: true}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Columns != 0 || k.RowHeight != 4 || !k.NoScores {
		t.Errorf("svg key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatText); k.Columns != 120 || k.RowHeight != 0 {
		t.Errorf("txt key = %+v", k)
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(t, nil)
	result, err := r.Execute(context.Background(), Options{
		Path:    fixture,
		Formats: []string{FormatSVG, FormatJSON, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	l := result.Layout
	if l.AlignmentID != "NM_000001:chr1" || l.Kind != "pairwise" {
		t.Errorf("layout = %s %s", l.AlignmentID, l.Kind)
	}
	// width and tail mode come from the file's display table
	if l.Width != 300 || l.TailMode != "sequence" {
		t.Errorf("width %g, tail mode %s", l.Width, l.TailMode)
	}
	if len(l.NonConsensus) != 1 {
		t.Errorf("non-consensus = %v, want the GA donor intron", l.NonConsensus)
	}
	if result.Stats.Rows != 2 || result.Stats.Intervals == 0 {
		t.Errorf("stats = %+v", result.Stats)
	}

	for _, f := range []string{FormatSVG, FormatJSON, FormatText} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not an svg document")
	}
	if txt := string(result.Artifacts[FormatText]); strings.Contains(txt, "\x1b[") {
		t.Errorf("text artifact carries escape codes: %q", txt)
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, fc)
	defer r.Close()

	opts := Options{Path: fixture, Formats: []string{FormatSVG, FormatJSON}}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run hit the cache: %+v", third.CacheInfo)
	}

	// a different layout option is a different entry
	opts.Refresh = false
	opts.Width = 150
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("narrow run: %v", err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("layout with a new width came from the cache")
	}
}

func TestExecuteNoScores(t *testing.T) {
	result, err := quietRunner(t, nil).Execute(context.Background(), Options{
		Path:     fixture,
		Formats:  []string{FormatSVG, FormatJSON},
		NoScores: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if bytes.Contains(result.Artifacts[FormatSVG], []byte(`class="score`)) {
		t.Error("svg draws score rows")
	}
	if bytes.Contains(result.Artifacts[FormatJSON], []byte(`"rows"`)) {
		t.Error("json carries score rows")
	}
	if len(result.Layout.Rows) == 0 {
		t.Error("layout should still carry score rows")
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing file", Options{Path: filepath.Join(t.TempDir(), "none.toml")}, errors.ErrCodeFileNotFound},
		{"no path", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Path: fixture, Formats: []string{"png"}}, errors.ErrCodeInvalidInput},
		{"bad range", Options{Path: fixture, VisibleFrom: 10, VisibleTo: 5}, errors.ErrCodeRangeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(t, nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() = %v, want %s", err, tt.code)
			}
		})
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	loads, layouts, renders int
	rows                    int
}

func (h *countingHooks) OnLoadComplete(_ context.Context, _ string, rows int, _ time.Duration, _ error) {
	h.loads++
	h.rows = rows
}

func (h *countingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.layouts++
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

func TestExecuteHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	if _, err := quietRunner(t, nil).Execute(context.Background(), Options{Path: fixture}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if h.loads != 1 || h.layouts != 1 || h.renders != 1 {
		t.Errorf("hooks fired %d/%d/%d times, want once each", h.loads, h.layouts, h.renders)
	}
	if h.rows != 2 {
		t.Errorf("load reported %d rows, want 2", h.rows)
	}
}
