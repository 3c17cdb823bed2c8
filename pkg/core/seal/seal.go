package seal

import (
	"github.com/matzehuels/sigil/pkg/core/geom"
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/errors"
)

// Options configures [Pour].
type Options struct {
	// Identifier is the seal's identifier. It is required unless Symbols is
	// set, and is still used for colorway selection when it is.
	Identifier patp.Identifier

	// Dictionary supplies the symbols. Nil draws [DefaultSymbol] for every
	// syllable.
	Dictionary *Dictionary

	// Symbols, when non-empty, replaces resolution: these trees are placed
	// as given, already decompressed.
	Symbols []Node

	// Size is the canvas edge length. Zero means [DefaultSize].
	Size float64

	// Colorway overrides the colorway derived from Identifier.
	Colorway Colorway
}

// Pour builds the seal document for opts. The result is a fresh tree rooted
// at an "svg" node; nothing reachable from opts is modified.
func Pour(opts Options) (Node, error) {
	size := opts.Size
	switch {
	case size == 0:
		size = DefaultSize
	case size < 0:
		return Node{}, errors.New(errors.ErrCodeInvalidInput, "size must be positive, got %v", size)
	}

	symbols := opts.Symbols
	if len(symbols) == 0 {
		if len(opts.Identifier) == 0 {
			return Node{}, errors.New(errors.ErrCodeInvalidInput, "identifier is required")
		}
		if err := patp.CheckShape(opts.Identifier); err != nil {
			return Node{}, err
		}
		var err error
		if symbols, err = Resolve(opts.Identifier, opts.Dictionary); err != nil {
			return Node{}, err
		}
	} else if !patp.ValidCount(len(symbols)) {
		return Node{}, errors.New(errors.ErrCodeInvalidIdentifierShape,
			"%d symbols (want 1 or an even count)", len(symbols))
	}

	layout, err := NewLayout(len(symbols), Unit, size, BorderRatio)
	if err != nil {
		return Node{}, err
	}
	placed, err := Place(symbols, layout)
	if err != nil {
		return Node{}, err
	}
	return Dye(Assemble(size, placed), opts.Identifier, opts.Colorway), nil
}

// Assemble wraps placed symbols in a size×size document with a full-canvas
// background rectangle. The rectangle is styled with the background role and
// is drawn first.
func Assemble(size float64, symbols []Node) Node {
	s := geom.FormatFloat(size)
	children := make([]Node, 0, len(symbols)+1)
	children = append(children, Node{
		Tag:  TagRect,
		Meta: Meta{Style: &Style{Fill: RoleBackground}},
		Attr: Attrs{
			AttrWidth:  s,
			AttrHeight: s,
			AttrX:      "0",
			AttrY:      "0",
		},
	})
	children = append(children, symbols...)
	return Node{
		Tag:      TagSVG,
		Attr:     Attrs{AttrWidth: s, AttrHeight: s},
		Children: children,
	}
}

// Renderer materializes a document into an output format.
type Renderer interface {
	Materialize(doc Node) ([]byte, error)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(doc Node) ([]byte, error)

// Materialize calls f(doc).
func (f RendererFunc) Materialize(doc Node) ([]byte, error) { return f(doc) }

// Render pours opts and hands the document to r.
func Render(r Renderer, opts Options) ([]byte, error) {
	doc, err := Pour(opts)
	if err != nil {
		return nil, err
	}
	return r.Materialize(doc)
}
