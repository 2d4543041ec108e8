package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/errors"
	"github.com/matzehuels/alnglyph/pkg/glyph"
	"github.com/matzehuels/alnglyph/pkg/observability"
)

// Cache key types reported to [observability.CacheHooks].
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Input = in
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows = in.Doc.Source.NumRows()

	r.Logger.Info("loaded alignment",
		"id", in.Doc.Source.ID(),
		"rows", result.Stats.Rows,
		"duration", result.Stats.LoadTime)

	opts.ApplyDisplay(in.Doc.Display)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Intervals = len(layout.Intervals)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"intervals", len(layout.Intervals),
		"scale", layout.Scale,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)
	if layout.Degraded {
		r.Logger.Warn("layout degraded", "issues", len(layout.Issues))
	}
	for _, issue := range layout.Issues {
		r.Logger.Debug(issue)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the alignment description named by opts.Path.
func (r *Runner) Load(ctx context.Context, opts Options) (*Input, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Path)
	start := time.Now()

	in, err := Load(opts.Path)
	rows := 0
	if in != nil {
		rows = in.Doc.Source.NumRows()
	}
	hooks.OnLoadComplete(ctx, opts.Path, rows, time.Since(start), err)
	return in, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Layouts are keyed by the input's content hash, so an
// edited file never reads a stale entry.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, in *Input, opts Options) (glyph.Layout, bool, error) {
	if in == nil || in.Doc == nil {
		return glyph.Layout{}, false, errors.New(errors.ErrCodeInvalidInput, "nothing loaded")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return glyph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	id := in.Doc.Source.ID()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, id, in.Doc.Source.NumRows())
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(in.Hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached glyph.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				hooks.OnLayoutComplete(ctx, id, time.Since(start), nil)
				return cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	layout, err := ComputeLayout(in, opts)
	hooks.OnLayoutComplete(ctx, id, time.Since(start), err)
	if err != nil {
		return glyph.Layout{}, false, err
	}

	if data, err := json.Marshal(layout); err == nil {
		r.store(ctx, keyTypeLayout, cacheKey, data, cache.TTLLayout)
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, in *Input, opts Options) (glyph.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, in, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is set only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout glyph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := json.Marshal(layout)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	rendered, err := Render(layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, keyTypeArtifact, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout glyph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store writes an entry and reports it. Write failures are logged and dropped.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
