// Package sink serializes seal documents.
//
// [RenderSVG] writes the document tree as SVG markup. Attributes are emitted
// in sorted order so equal documents always produce equal bytes, which keeps
// rendered artifacts cacheable by content hash. [RenderJSON] writes the tree
// itself for debugging and for clients that draw seals natively.
//
// Each format also has a [seal.Renderer] adapter (see [SVG], [JSON], [PNG]
// and [PDF]) for use with [seal.Render]:
//
//	out, err := seal.Render(sink.SVG(sink.WithTitle(id.String())), opts)
package sink
