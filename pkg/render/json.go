package render

import (
	"encoding/json"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	stats bool
}

// WithStats includes row uniformity statistics (mean deviation from the
// target height, standard deviation, worst row) in the JSON output.
func WithStats() JSONOption { return func(r *jsonRenderer) { r.stats = true } }

type jsonOutput struct {
	album.Layout
	Stats *jsonStats `json:"stats,omitempty"`
}

type jsonStats struct {
	Rows          int     `json:"rows"`
	MeanDeviation float64 `json:"mean_deviation"`
	StdDev        float64 `json:"std_dev"`
	MaxDeviation  float64 `json:"max_deviation"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the primary data interchange format, enabling:
//
//   - Integration with external gallery front-ends
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// The document includes everything needed to reproduce the layout: container
// width, target row height, packing options, and the placed items.
func RenderJSON(l album.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Layout: l}
	if r.stats {
		s := gallery.MeasureRows(album.Parse(l), l.TargetRowHeight)
		out.Stats = &jsonStats{
			Rows:          s.Rows,
			MeanDeviation: s.MeanDeviation,
			StdDev:        s.StdDev,
			MaxDeviation:  s.MaxDeviation,
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
