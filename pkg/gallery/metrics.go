package gallery

import "gonum.org/v1/gonum/stat"

// RowStats summarizes how close a packed layout's justified rows came to the
// target row height. The trailing row is excluded since it never tries to
// match the target. Useful for tuning target heights and for asserting
// layout quality in tests.
type RowStats struct {
	// Rows is the number of justified (non-trailing) rows measured.
	Rows int

	// MeanDeviation is the mean of |rowHeight - target| across rows.
	MeanDeviation float64

	// StdDev is the sample standard deviation of the deviations.
	// Zero when fewer than two rows were measured.
	StdDev float64

	// MaxDeviation is the largest single-row deviation.
	MaxDeviation float64
}

// MeasureRows computes deviation statistics for a packed layout against the
// target row height it was packed with.
func MeasureRows(l Layout, targetRowHeight float64) RowStats {
	var devs []float64
	lastY := -1.0
	for _, p := range l.Items {
		if p.LastRow || p.Y == lastY {
			continue
		}
		lastY = p.Y
		d := p.Height - targetRowHeight
		if d < 0 {
			d = -d
		}
		devs = append(devs, d)
	}

	s := RowStats{Rows: len(devs)}
	if len(devs) == 0 {
		return s
	}

	s.MeanDeviation = stat.Mean(devs, nil)
	if len(devs) > 1 {
		s.StdDev = stat.StdDev(devs, nil)
	}
	for _, d := range devs {
		if d > s.MaxDeviation {
			s.MaxDeviation = d
		}
	}
	return s
}
