package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sigil/pkg/core/render"
	"github.com/matzehuels/sigil/pkg/core/seal"
)

// Options configures document tree rendering.
type Options struct {
	// Detailed includes attributes and metadata in node labels.
	// When false, only the tag is shown.
	Detailed bool
}

// maxValueLen truncates long attribute values such as path geometry.
const maxValueLen = 48

// ToDOT converts a document tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(doc seal.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var visit func(n seal.Node) string
	visit = func(n seal.Node) string {
		id := "n" + strconv.Itoa(next)
		next++
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", id, visit(c)))
		}
		return id
	}
	visit(doc)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n seal.Node, detailed bool) string {
	if !detailed {
		return n.Tag
	}

	var parts []string
	if n.Meta.Style != nil {
		parts = append(parts, "style: "+n.Meta.Style.Fill.String())
	}
	if n.Meta.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate: %v", n.Meta.Rotate))
	}
	for _, k := range n.Attr.Keys() {
		v := n.Attr[k]
		if len(v) > maxValueLen {
			v = v[:maxValueLen] + "…"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	if len(parts) == 0 {
		return n.Tag
	}
	return n.Tag + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n seal.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill := n.Attr[seal.AttrFill]; strings.HasPrefix(fill, "#") {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", expandHex(fill)), fmt.Sprintf("fontcolor=%q", contrast(fill)))
	}
	if n.Meta.Style != nil {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// expandHex turns "#fff" into "#ffffff"; Graphviz only understands the
// long forms.
func expandHex(c string) string {
	if len(c) != 4 {
		return c
	}
	return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
}

// contrast picks black or white text for a hex background.
func contrast(c string) string {
	c = expandHex(c)
	if len(c) < 7 {
		return "black"
	}
	rgb, err := strconv.ParseUint(c[1:7], 16, 32)
	if err != nil {
		return "black"
	}
	r, g, b := float64(rgb>>16&0xff), float64(rgb>>8&0xff), float64(rgb&0xff)
	if 0.299*r+0.587*g+0.114*b < 128 {
		return "white"
	}
	return "black"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
