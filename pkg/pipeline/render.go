package pipeline

import (
	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/errors"
	"github.com/nakamurapomeo/collage-app/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(l album.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = render.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatJSON:
			data, err = render.RenderJSON(l, buildJSONOptions(opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	if opts.Images {
		svgOpts = append(svgOpts, render.WithImages())
	}
	return svgOpts
}

func buildPNGOptions(opts Options) []render.PNGOption {
	pngOpts := []render.PNGOption{render.WithPNGScale(opts.Scale)}
	if opts.Labels {
		pngOpts = append(pngOpts, render.WithPNGLabels())
	}
	if opts.Background != "" {
		pngOpts = append(pngOpts, render.WithPNGBackground(opts.Background))
	}
	return pngOpts
}

func buildJSONOptions(opts Options) []render.JSONOption {
	var jsonOpts []render.JSONOption
	if opts.Stats {
		jsonOpts = append(jsonOpts, render.WithStats())
	}
	return jsonOpts
}
