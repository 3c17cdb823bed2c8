package sink

import (
	"github.com/matzehuels/sigil/pkg/core/render"
	"github.com/matzehuels/sigil/pkg/core/seal"
)

// SVG returns a [seal.Renderer] producing SVG markup.
func SVG(opts ...SVGOption) seal.Renderer {
	return seal.RendererFunc(func(doc seal.Node) ([]byte, error) {
		return RenderSVG(doc, opts...), nil
	})
}

// JSON returns a [seal.Renderer] producing the JSON document tree.
func JSON() seal.Renderer {
	return seal.RendererFunc(RenderJSON)
}

// PNG returns a [seal.Renderer] producing a PNG image at scale times the
// document size.
func PNG(scale float64, opts ...SVGOption) seal.Renderer {
	return seal.RendererFunc(func(doc seal.Node) ([]byte, error) {
		return render.ToPNG(RenderSVG(doc, opts...), scale)
	})
}

// PDF returns a [seal.Renderer] producing a PDF. Requires rsvg-convert.
func PDF(opts ...SVGOption) seal.Renderer {
	return seal.RendererFunc(func(doc seal.Node) ([]byte, error) {
		return render.ToPDF(RenderSVG(doc, opts...))
	})
}
