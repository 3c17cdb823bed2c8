// Package seal turns identifiers into seal documents.
//
// A seal is a square canvas holding one symbol per syllable of an
// identifier. Rendering runs in fixed stages, each a pure function over
// [Node] trees:
//
//  1. [Resolve] looks each syllable up in a [Dictionary] and decompresses
//     shared path references, falling back to [DefaultSymbol].
//  2. [NewLayout] computes a grid of cell origins for the symbol count.
//  3. [Place] attaches a translate, scale and rotate transform per cell.
//  4. [Assemble] wraps the symbols in a document with a background rect.
//  5. [Dye] replaces symbolic color roles with concrete colors from a
//     [Colorway] chosen deterministically from the identifier.
//
// [Pour] runs the whole pipeline:
//
//	id := patp.MustParse("~ridlur-figbud")
//	doc, err := seal.Pour(seal.Options{Identifier: id, Dictionary: dict})
//
// Dictionaries are never modified, so one can be shared across goroutines.
// Output formats live in the render/sink package; they implement [Renderer].
package seal
