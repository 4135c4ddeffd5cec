package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/cache"
	"github.com/nakamurapomeo/collage-app/pkg/observability"
	"github.com/nakamurapomeo/collage-app/pkg/probe"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, prober, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Prober *probe.Prober
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

// Execute runs the complete probe → pack → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, a album.Album, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.ItemCount = len(a.Items)

	// Stage 1: Probe (optional)
	if opts.Probe && r.Prober != nil {
		probeStart := time.Now()
		observability.Pipeline().OnProbeStart(ctx, a.ID, len(a.Items))
		resolved, err := r.Prober.ResolveItems(ctx, a.Items)
		result.Stats.ProbeTime = time.Since(probeStart)
		result.Stats.Resolved = resolved
		observability.Pipeline().OnProbeComplete(ctx, a.ID, resolved, result.Stats.ProbeTime, err)
		if err != nil {
			r.Logger.Warn("some items could not be probed", "err", err)
		}
		if resolved > 0 {
			r.Logger.Info("resolved item dimensions",
				"resolved", resolved,
				"duration", result.Stats.ProbeTime)
		}
	}

	// Content hash for cache keys and API responses
	if albumData, err := album.MarshalAlbum(a); err == nil {
		result.AlbumHash = cache.Hash(albumData)
	}

	// Stage 2: Pack
	packStart := time.Now()
	observability.Pipeline().OnPackStart(ctx, a.ID, len(a.Items))
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, a, result.AlbumHash, opts)
	result.Stats.PackTime = time.Since(packStart)
	observability.Pipeline().OnPackComplete(ctx, a.ID, layout.Rows, result.Stats.PackTime, err)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	result.Layout = layout
	result.Stats.RowCount = layout.Rows
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("packed layout",
		"items", len(layout.Items),
		"rows", layout.Rows,
		"height", layout.Height,
		"duration", result.Stats.PackTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo packs an album with caching and returns cache
// hit info. albumHash may be empty, in which case it is recomputed.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, a album.Album, albumHash string, opts Options) (album.Layout, bool, error) {
	if err := opts.ValidateForPack(); err != nil {
		return album.Layout{}, false, err
	}
	r.applyLogger(&opts)

	if albumHash == "" {
		if albumData, err := album.MarshalAlbum(a); err == nil {
			albumHash = cache.Hash(albumData)
		}
	}
	cacheKey := r.Keyer.LayoutKey(albumHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := album.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout, err := GenerateLayout(a, opts)
	if err != nil {
		return album.Layout{}, false, err
	}

	// Cache the result
	if data, err := album.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls
// GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, a album.Album, opts Options) (album.Layout, error) {
	layout, _, err := r.GenerateLayoutWithCacheInfo(ctx, a, "", opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout album.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := album.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(layout, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, layout album.Layout, opts Options) (map[string][]byte, error) {
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

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
