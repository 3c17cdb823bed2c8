package seal

import (
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/errors"
)

// Canvas defaults. Symbols are drawn on a Unit×Unit grid and the border is
// Size/BorderRatio wide.
const (
	Unit        = 128.0
	DefaultSize = 256.0
	BorderRatio = 16.0
)

// Point is a grid cell origin in canvas coordinates.
type Point struct {
	X, Y float64
}

// Layout is the placement geometry for one seal.
type Layout struct {
	Size         float64 `json:"size"`
	Unit         float64 `json:"unit"`
	BorderWidth  float64 `json:"border_width"`
	MarginSize   float64 `json:"margin_size"`
	CenterOffset float64 `json:"center_offset"`
	Center       float64 `json:"center"`
	Fudge        float64 `json:"fudge"`
	Columns      int     `json:"columns"`
	Rows         int     `json:"rows"`
	Grid         []Point `json:"grid"`
}

// NewLayout computes the grid for count symbols on a size×size canvas.
//
// One symbol is centered. Two symbols sit side by side on the vertical
// center line. Larger counts use a square lattice of count/2 cells per side,
// inset by the border; only the first count cells are returned.
func NewLayout(count int, unit, size, borderRatio float64) (Layout, error) {
	if unit <= 0 || size <= 0 || borderRatio <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"layout dimensions must be positive (unit=%v size=%v ratio=%v)", unit, size, borderRatio)
	}
	if !patp.ValidCount(count) {
		return Layout{}, errors.New(errors.ErrCodeInvalidSymbolCount,
			"cannot lay out %d symbols", count)
	}

	bw := size / borderRatio
	l := Layout{
		Size:         size,
		Unit:         unit,
		BorderWidth:  bw,
		MarginSize:   size / unit,
		CenterOffset: 0.5*bw + 0.25*size,
		Center:       unit / 2,
	}

	var gutter, margin Point
	switch count {
	case 1:
		gutter = Point{l.CenterOffset, l.CenterOffset}
		l.Columns, l.Rows = 1, 1
	case 2:
		gutter = Point{bw, l.CenterOffset}
		margin = Point{l.MarginSize, 0}
		l.Columns, l.Rows = 2, 1
	default:
		gutter = Point{bw, bw}
		margin = Point{l.MarginSize, l.MarginSize}
		l.Columns, l.Rows = count/2, count/2
	}

	xs := axis(size, gutter.X, margin.X, l.Columns)
	ys := axis(size, gutter.Y, margin.Y, l.Rows)
	l.Grid = make([]Point, 0, count)
	for _, y := range ys {
		for _, x := range xs {
			if len(l.Grid) == count {
				return l, nil
			}
			l.Grid = append(l.Grid, Point{x, y})
		}
	}
	return l, nil
}

// axis returns n evenly spaced cell origins along one side of the canvas.
// The lattice starts at the gutter and is pulled back by half the total
// margin so the outer margins balance.
func axis(size, gutter, margin float64, n int) []float64 {
	cell := (size - 2*gutter) / float64(n)
	start := gutter - margin*float64(n-1)/2
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*(cell+margin)
	}
	return out
}

// ScaleFactor is the uniform scale applied to every symbol.
func (l Layout) ScaleFactor() float64 {
	return (l.Size - 2*l.BorderWidth + l.Fudge) / (2 * l.Unit)
}
