package chart

import "math"

// Series is a named line of points. Points with a NaN coordinate break the
// line.
type Series struct {
	Name string
	X, Y []float64
}

// Data is everything drawn on one chart.
type Data struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Info   []string // lines printed under the chart
}

// Bounds is the value range shown on the axes.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) valid() bool {
	for _, v := range []float64{b.XMin, b.XMax, b.YMin, b.YMax} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Bounds returns the axis range of the data. The y axis starts at zero
// when no value is negative, and gets a 5% margin on top.
func (d *Data) Bounds() Bounds {
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}

	for _, s := range d.Series {
		for i := range min(len(s.X), len(s.Y)) {
			x, y := s.X[i], s.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				continue
			}
			b.XMin, b.XMax = min(b.XMin, x), max(b.XMax, x)
			b.YMin, b.YMax = min(b.YMin, y), max(b.YMax, y)
		}
	}
	if !b.valid() {
		return b
	}

	if b.YMin >= 0 {
		b.YMin = 0
	}
	if b.XMax == b.XMin {
		b.XMin, b.XMax = b.XMin-1, b.XMax+1
	}
	if b.YMax == b.YMin {
		b.YMax = b.YMin + 1
	}
	b.YMax += (b.YMax - b.YMin) * 0.05

	return b
}
