package seal

import (
	"github.com/matzehuels/sigil/pkg/core/geom"
	"github.com/matzehuels/sigil/pkg/errors"
)

// Transform returns the placement transform for a symbol at cell p rotated
// by deg degrees about the symbol's own center.
func (l Layout) Transform(p Point, deg float64) geom.Matrix {
	s := l.ScaleFactor()
	return geom.Compose(
		geom.Translate(p.X, p.Y),
		geom.Scale(s, s),
		geom.RotateDeg(deg, l.Center, l.Center),
	)
}

// Place assigns symbols[i] to grid cell i and returns copies carrying a
// "transform" attribute. The rotation comes from each symbol's Meta.Rotate.
// Inputs are not modified.
func Place(symbols []Node, l Layout) ([]Node, error) {
	if len(symbols) != len(l.Grid) {
		return nil, errors.New(errors.ErrCodeInvalidSymbolCount,
			"%d symbols for a %d-cell grid", len(symbols), len(l.Grid))
	}
	out := make([]Node, len(symbols))
	for i, sym := range symbols {
		placed := sym.Clone()
		if placed.Attr == nil {
			placed.Attr = Attrs{}
		}
		placed.Attr[AttrTransform] = l.Transform(l.Grid[i], sym.Meta.Rotate).SVG()
		out[i] = placed
	}
	return out, nil
}
