package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/sigil/pkg/core/seal"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title  string
	indent bool
}

// WithTitle adds a <title> element, which viewers show as a tooltip and
// screen readers announce.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithIndent pretty-prints the markup, one element per line.
func WithIndent() SVGOption { return func(r *svgRenderer) { r.indent = true } }

// RenderSVG serializes doc as SVG. A root "svg" node gains the SVG namespace
// and a viewBox matching its width and height when they are missing.
//
// Elements rejected by [seal.AllowedTag] are dropped with their children
// and attributes rejected by [seal.AllowedAttr] are skipped. This holds for
// trees that never went through dictionary import.
func RenderSVG(doc seal.Node, opts ...SVGOption) []byte {
	r := &svgRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	if doc.Tag == seal.TagSVG {
		doc = withRootAttrs(doc)
	}

	var buf bytes.Buffer
	r.writeNode(&buf, doc, 0, true)
	return buf.Bytes()
}

func withRootAttrs(doc seal.Node) seal.Node {
	attrs := doc.Attr.Clone()
	if attrs == nil {
		attrs = seal.Attrs{}
	}
	if _, ok := attrs["xmlns"]; !ok {
		attrs["xmlns"] = svgNamespace
	}
	w, h := attrs[seal.AttrWidth], attrs[seal.AttrHeight]
	if _, ok := attrs["viewBox"]; !ok && w != "" && h != "" {
		attrs["viewBox"] = fmt.Sprintf("0 0 %s %s", w, h)
	}
	doc.Attr = attrs
	return doc
}

func (r *svgRenderer) writeNode(buf *bytes.Buffer, n seal.Node, depth int, root bool) {
	if !seal.AllowedTag(n.Tag) {
		return
	}
	if r.indent {
		buf.WriteString(strings.Repeat("  ", depth))
	}
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, k := range n.Attr.Keys() {
		if !seal.AllowedAttr(k) {
			continue
		}
		fmt.Fprintf(buf, ` %s="`, k)
		_ = xml.EscapeText(buf, []byte(n.Attr[k]))
		buf.WriteByte('"')
	}

	hasTitle := root && r.title != ""
	if len(n.Children) == 0 && !hasTitle {
		buf.WriteString("/>")
		r.newline(buf)
		return
	}
	buf.WriteByte('>')
	r.newline(buf)

	if hasTitle {
		if r.indent {
			buf.WriteString(strings.Repeat("  ", depth+1))
		}
		buf.WriteString("<title>")
		_ = xml.EscapeText(buf, []byte(r.title))
		buf.WriteString("</title>")
		r.newline(buf)
	}
	for _, c := range n.Children {
		r.writeNode(buf, c, depth+1, false)
	}

	if r.indent {
		buf.WriteString(strings.Repeat("  ", depth))
	}
	fmt.Fprintf(buf, "</%s>", n.Tag)
	r.newline(buf)
}

func (r *svgRenderer) newline(buf *bytes.Buffer) {
	if r.indent {
		buf.WriteByte('\n')
	}
}
