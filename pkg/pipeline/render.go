package pipeline

import (
	"fmt"

	"github.com/matzehuels/sigil/pkg/core/render/nodelink"
	"github.com/matzehuels/sigil/pkg/core/render/sink"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

// Render generates output artifacts in the requested formats.
func Render(doc seal.Node, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		r, err := RendererFor(format, opts)
		if err != nil {
			return nil, err
		}
		data, err := r.Materialize(doc)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RendererFor returns the renderer for format configured from opts.
func RendererFor(format string, opts Options) (seal.Renderer, error) {
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.SVG(svgOpts...), nil
	case FormatPNG:
		return sink.PNG(opts.Scale, svgOpts...), nil
	case FormatPDF:
		return sink.PDF(svgOpts...), nil
	case FormatJSON:
		return sink.JSON(), nil
	case FormatDOT:
		return seal.RendererFunc(func(doc seal.Node) ([]byte, error) {
			return []byte(nodelink.ToDOT(doc, nodelink.Options{Detailed: true})), nil
		}), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// buildSVGOptions constructs SVG rendering options from pipeline options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title && opts.Identifier != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Identifier))
	}
	return svgOpts
}
