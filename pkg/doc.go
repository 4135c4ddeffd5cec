// Package pkg provides the core libraries for collage layout generation.
//
// # Overview
//
// Collage packs photo albums into justified row layouts: every row is scaled
// so its items fill the container width exactly, with row heights kept as
// close to a configurable target as possible. The pkg directory is organized
// into four main areas:
//
//  1. [gallery] - Domain logic (row packing, placement, layout metrics)
//  2. [album] - Serialization types for albums and layouts
//  3. [pipeline] - Orchestration (probe → pack → render) used by CLI and server
//  4. [cache], [store] - Infrastructure (caching, persistence)
//
// # Architecture
//
// The typical data flow through collage:
//
//	Album file (JSON)
//	         ↓
//	    [probe] package (resolve missing image dimensions)
//	         ↓
//	    [gallery] package (partition + pack into justified rows)
//	         ↓
//	    [render] package (draw the layout)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Pack an album and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/nakamurapomeo/collage-app/pkg/album"
//	    "github.com/nakamurapomeo/collage-app/pkg/cache"
//	    "github.com/nakamurapomeo/collage-app/pkg/pipeline"
//	)
//
//	// 1. Load the album
//	a, _ := album.ReadAlbumFile("vacation.json")
//
//	// 2. Configure the pipeline
//	opts := pipeline.Options{}
//	opts.SetPackDefaults()
//	opts.SetRenderDefaults()
//
//	// 3. Pack and render
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), a, opts)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [gallery] - Justified row packing. Partitions items into rows by comparing
// candidate row heights against the target, finalizes each row with integer
// pixel rounding and optional gutters, and reports layout quality metrics.
//
// [album] - Input and output types. Albums describe items (source, aspect
// ratio or explicit dimensions, captions); layouts describe placed items with
// absolute positions. Both round-trip through JSON.
//
// [probe] - Resolves image dimensions for items that declare a source URL but
// no aspect ratio, using lightweight HTTP fetches with a shared cache.
//
// ## Visualization
//
// [render] - Produces output artifacts from a layout: SVG (hand-built markup),
// PNG (rasterized via fogleman/gg, optionally drawing the source images), and
// canonical JSON.
//
// ## Infrastructure
//
// [pipeline] - Complete generation pipeline (probe → pack → render) used by
// CLI and server. Ensures consistent behavior across all entry points and
// wires layout and artifact caching around the expensive stages.
//
// [cache] - Cache backends keyed by content hashes: FileCache (CLI),
// RedisCache (server), NullCache (testing and --no-cache).
//
// [store] - Album and layout persistence for the HTTP API: MemoryStore for
// development and testing, MongoStore for durable deployments.
//
// [httputil] - Shared HTTP client helpers (retries, response caching) used by
// the probe package.
//
// [observability] - Process-wide hook registry for HTTP instrumentation.
//
// [errors] - Error classification (validation, not-found, internal) shared by
// the CLI and the HTTP API.
//
// [buildinfo] - Version metadata embedded at build time.
package pkg
