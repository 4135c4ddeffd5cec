// Package pipeline provides the core layout pipeline for the collage app.
//
// This package implements the complete probe → pack → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Probe: Resolve missing item dimensions from image files or URLs
//  2. Pack: Break the item list into justified rows and place every item
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:           1200,
//	    TargetRowHeight: 240,
//	    Formats:         []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, a, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Pack only
//	layout, err := runner.GenerateLayout(ctx, a, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/cache"
	"github.com/nakamurapomeo/collage-app/pkg/errors"
	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200.0

	// DefaultTargetRowHeight is the default target row height in pixels.
	DefaultTargetRowHeight = 240.0

	// DefaultScale is the default raster scale for PNG output.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Pack options
	Width           float64 `json:"width,omitempty"`
	TargetRowHeight float64 `json:"target_row_height,omitempty"`
	Gutter          float64 `json:"gutter,omitempty"`
	SnapLastToEdge  bool    `json:"snap_last_to_edge,omitempty"`
	LastRowCap      float64 `json:"last_row_cap,omitempty"`
	Probe           bool    `json:"probe,omitempty"`   // Resolve missing dimensions before packing
	Refresh         bool    `json:"refresh,omitempty"` // Bypass cached layouts and artifacts

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Background string   `json:"background,omitempty"`
	Images     bool     `json:"images,omitempty"` // Embed item sources in SVG output
	Stats      bool     `json:"stats,omitempty"`  // Include row statistics in JSON output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the packed layout.
	Layout album.Layout

	// AlbumHash is the content hash of the album the layout was packed from.
	AlbumHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	RowCount   int
	Resolved   int // Items whose dimensions came from the probe
	ProbeTime  time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPack(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPackDefaults sets default values for packing.
func (o *Options) SetPackDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.TargetRowHeight == 0 {
		o.TargetRowHeight = DefaultTargetRowHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPack validates and sets defaults for packing.
func (o *Options) ValidateForPack() error {
	o.SetPackDefaults()
	if err := errors.ValidateContainer(o.Width, o.TargetRowHeight); err != nil {
		return err
	}
	return errors.ValidateGutter(o.Gutter)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
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

// GalleryOptions converts the pack fields to the packer's option type.
func (o *Options) GalleryOptions() gallery.Options {
	return gallery.Options{
		Gutter:               o.Gutter,
		SnapLastToEdge:       o.SnapLastToEdge,
		LastRowCapMultiplier: o.LastRowCap,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:           o.Width,
		TargetRowHeight: o.TargetRowHeight,
		Gutter:          o.Gutter,
		SnapLastToEdge:  o.SnapLastToEdge,
		LastRowCap:      o.LastRowCap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		Labels:     o.Labels,
		Background: o.Background,
		Images:     o.Images,
		Stats:      o.Stats,
	}
}
