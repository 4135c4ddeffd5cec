package render

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/nakamurapomeo/collage-app/pkg/album"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	labels     bool
	background string
	palette    []string
}

// WithPNGScale sets the raster scale factor (default 1.0). Use 2.0 for
// 2x-resolution output.
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGLabels draws item captions (or IDs) centered on each tile.
func WithPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = true } }

// WithPNGBackground sets the canvas background color as a hex string
// (default white).
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// WithPNGPalette sets the tile fill colors, cycled in item order.
func WithPNGPalette(colors []string) PNGOption {
	return func(r *pngRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// RenderPNG rasterizes the layout into a PNG image. Tiles are drawn as
// filled rectangles with a thin white separator, matching the SVG sink's
// appearance.
func RenderPNG(l album.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0, background: "#ffffff", palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(l.Width*r.scale + 0.5)
	h := int(l.Height*r.scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	for i, p := range l.Items {
		dc.SetHexColor(r.palette[i%len(r.palette)])
		dc.DrawRectangle(p.X, p.Y, p.Width, p.Height)
		dc.Fill()

		dc.SetHexColor("#ffffff")
		dc.SetLineWidth(1)
		dc.DrawRectangle(p.X, p.Y, p.Width, p.Height)
		dc.Stroke()
	}

	if r.labels {
		dc.SetHexColor("#ffffff")
		for _, p := range l.Items {
			label := p.Item.Caption
			if label == "" {
				label = p.Item.ID
			}
			if label == "" {
				continue
			}
			dc.DrawStringAnchored(label, p.X+p.Width/2, p.Y+p.Height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
