// Package nodelink draws a seal document's tree structure with Graphviz.
//
// Seals are rendered by the sink package; this package is a debugging aid
// that shows how a document is put together: the root, the background rect,
// one subtree per symbol and each path inside it.
//
//	Seal:     Node → sink.RenderSVG() → SVG
//	Nodelink: Node → ToDOT() → DOT → RenderSVG() → SVG
//
// # Usage
//
//	doc, _ := seal.Pour(opts)
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Nodes that carry a concrete fill are drawn in that color, so a colorized
// document shows its palette at a glance.
package nodelink
