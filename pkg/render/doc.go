// Package render provides output sinks for packed gallery layouts.
//
// # Overview
//
// A sink transforms a packed [album.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics with hover highlighting
//   - PNG: Raster preview images
//   - JSON: Layout data export for external tools
//
// # SVG Output
//
// [RenderSVG] produces an SVG document with one tile per placed item:
//
//	svg := render.RenderSVG(layout,
//	    render.WithLabels(),
//	    render.WithPalette([]string{"#4a6fa5", "#937860"}),
//	)
//
// Tiles carry their item ID as an element ID, so host pages can script
// against them. Hover highlighting is included by default.
//
// # PNG Output
//
// [RenderPNG] rasterizes the layout directly (no external tools required):
//
//	data, err := render.RenderPNG(layout, render.WithPNGScale(2))
//
// # JSON Output
//
// [RenderJSON] exports the layout as a pretty-printed JSON document,
// optionally including row uniformity statistics:
//
//	data, err := render.RenderJSON(layout, render.WithStats())
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(l album.Layout, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Access l.Items for positioned tiles
//  4. Register in internal/cli/render.go for CLI support
//
// [album.Layout]: github.com/nakamurapomeo/collage-app/pkg/album.Layout
package render
