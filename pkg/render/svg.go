package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/nakamurapomeo/collage-app/pkg/album"
)

const tileInteractionCSS = `
    .tile { transition: opacity 0.2s ease; }
    .tile:hover { opacity: 0.8; stroke-width: 3; }
    .tile-label { pointer-events: none; }`

// defaultPalette cycles across tiles when items carry no image source.
var defaultPalette = []string{
	"#4a6fa5", "#937860", "#6a8d73", "#a56a6a", "#8d6a9f", "#a5934a",
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	palette    []string
	images     bool
}

// WithLabels draws item captions (or IDs when no caption is set) centered on
// each tile.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground sets the canvas background color (default transparent).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPalette sets the tile fill colors, cycled in item order.
func WithPalette(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithImages embeds item sources as <image> elements instead of colored
// rectangles. Items without a source still render as rectangles.
func WithImages() SVGOption { return func(r *svgRenderer) { r.images = true } }

// RenderSVG renders the layout as an SVG document. Each placed item becomes
// a tile positioned at its computed coordinates. The output is deterministic
// for a given layout and options.
func RenderSVG(l album.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			l.Width, l.Height, html.EscapeString(r.background))
	}

	for i, p := range l.Items {
		r.renderTile(&buf, i, p)
	}
	if r.labels {
		for _, p := range l.Items {
			renderLabel(&buf, p)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderTile(buf *bytes.Buffer, i int, p album.Placed) {
	id := html.EscapeString(tileID(i, p))

	if r.images && p.Item.Source != "" {
		fmt.Fprintf(buf, `  <image id="tile-%s" class="tile" x="%.1f" y="%.1f" width="%.1f" height="%.1f" href="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			id, p.X, p.Y, p.Width, p.Height, html.EscapeString(p.Item.Source))
		return
	}

	fill := r.palette[i%len(r.palette)]
	fmt.Fprintf(buf, `  <rect id="tile-%s" class="tile" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
		id, p.X, p.Y, p.Width, p.Height, fill)
}

func renderLabel(buf *bytes.Buffer, p album.Placed) {
	label := p.Item.Caption
	if label == "" {
		label = p.Item.ID
	}
	if label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="tile-label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" fill="#ffffff" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
		p.X+p.Width/2, p.Y+p.Height/2, labelSize(p), html.EscapeString(label))
}

// labelSize picks a font size that stays inside small tiles.
func labelSize(p album.Placed) float64 {
	s := p.Height / 8
	if s < 10 {
		s = 10
	}
	if s > 16 {
		s = 16
	}
	return s
}

func tileID(i int, p album.Placed) string {
	if p.Item.ID != "" {
		return p.Item.ID
	}
	return fmt.Sprintf("%d", i)
}
