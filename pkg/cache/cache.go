// Package cache stores computed layouts and rendered artifacts between runs.
//
// A [Cache] is a byte store with expiry; a [Keyer] derives stable keys from
// the inputs that determine an entry. Two implementations ship here:
// [FileCache] for the CLI and [NullCache] when caching is disabled.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(inputHash, cache.LayoutKeyOpts{Buckets: 200})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    ...
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// IntervalKey identifies a merged interval list of one glyph.
	IntervalKey(alignmentID string, opts IntervalKeyOpts) string
	// LayoutKey identifies a computed layout of one input.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact of one layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// IntervalKeyOpts are the display fields an interval list depends on.
type IntervalKeyOpts struct {
	Revision    uint64  `json:"revision"`
	VisibleFrom int     `json:"visible_from"`
	VisibleTo   int     `json:"visible_to"`
	Scale       float64 `json:"scale"`
	Threshold   float64 `json:"threshold"`
	TailMode    string  `json:"tail_mode"`
}

// LayoutKeyOpts are the options a layout depends on.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Buckets     int     `json:"buckets"`
	VisibleFrom int     `json:"visible_from"`
	VisibleTo   int     `json:"visible_to"`
	TailMode    string  `json:"tail_mode"`
	BarHeight   float64 `json:"bar_height"`
	Palette     string  `json:"palette,omitempty"`
}

// ArtifactKeyOpts are the options a rendered artifact depends on.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	RowHeight float64 `json:"row_height,omitempty"`
	NoScores  bool    `json:"no_scores,omitempty"`
	Columns   int     `json:"columns,omitempty"`
}

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) IntervalKey(alignmentID string, opts IntervalKeyOpts) string {
	return hashKey("intervals", alignmentID, opts)
}

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
