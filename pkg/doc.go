// Package pkg provides the core libraries for Sigil seal rendering.
//
// # Overview
//
// Sigil turns an identifier such as ~ridlur-figbud into a seal: a square
// image with one symbol per syllable, laid out on a grid and colored from
// a palette chosen by the identifier itself. The same identifier always
// produces the same bytes. The pkg directory is organized into three areas:
//
//  1. [core] - Domain logic (identifiers, symbol placement, rendering)
//  2. [pipeline] - Orchestration (pour → render) with caching
//  3. Infrastructure - [cache], [io], [errors], [observability], [httputil]
//
// # Architecture
//
// The data flow through Sigil:
//
//	Identifier (~ridlur-figbud)
//	         ↓
//	    [core/patp] package (parse and split into syllables)
//	         ↓
//	    [core/seal] package (resolve → layout → place → assemble → dye)
//	         ↓
//	    [render/sink] package (document tree → SVG/JSON)
//	         ↓
//	    [core/render] package (SVG → PNG/PDF)
//
// # Quick Start
//
// Pour a seal and write it as SVG:
//
//	import (
//	    "github.com/matzehuels/sigil/pkg/core/patp"
//	    "github.com/matzehuels/sigil/pkg/core/render/sink"
//	    "github.com/matzehuels/sigil/pkg/core/seal"
//	)
//
//	id, _ := patp.Parse("~ridlur-figbud")
//	doc, _ := seal.Pour(seal.Options{Identifier: id, Dictionary: dict})
//	svg := sink.RenderSVG(doc)
//
// # Main Packages
//
// [core/patp] - Identifier parsing. Identifiers are one syllable or an even
// number of syllables, written as dash-separated words with a leading "~".
//
// [core/seal] - The seal pipeline as pure functions over shape trees.
// Dictionaries are shared read-only data; every stage works on clones.
//
// [core/geom] - Affine matrices for symbol transforms.
//
// [render/sink] - Output formats for a poured document (SVG, JSON).
//
// [render/nodelink] - Graphviz diagrams of the document tree itself.
//
// [pipeline] - The pour → render pipeline shared by the CLI and the HTTP
// server. Documents and artifacts are cached independently.
//
// [cache] - Cache backends: file (CLI), Redis, MongoDB and a null cache.
//
// [io] - Dictionary import (files and URLs) and document export.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/core/seal    # Specific package
//	go test -run Example       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core
// [core/patp]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/patp
// [core/seal]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/seal
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/geom
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/httputil
//
// [core/render]: https://pkg.go.dev/github.com/matzehuels/sigil/pkg/core/render
package pkg
