package seal

import (
	"slices"

	"github.com/matzehuels/sigil/pkg/core/patp"
)

// Colorway is an ordered palette indexed by [Role]: foreground, background,
// tertiary. Roles past the end resolve to the last entry.
type Colorway []string

// Resolve returns the color for r, or "" for an empty colorway.
func (c Colorway) Resolve(r Role) string {
	i := r.Index(len(c))
	if i < 0 {
		return ""
	}
	return c[i]
}

var canonical = [...]Colorway{
	{"#fff", "#000000"},
	{"#fff", "#4330FC"},
	{"#fff", "#372284"},
	{"#fff", "#129485"},
	{"#fff", "#928472"},
	{"#fff", "#FC5000"},
	{"#fff", "#2474D3"},
	{"#fff", "#A2C8D1"},
	{"#fff", "#203433"},
	{"#fff", "#FAA916"},
	{"#fff", "#00B49D"},
	{"#fff", "#852E46"},
	{"#fff", "#AE2B27"},
	{"#fff", "#E74E19"},
	{"#fff", "#00482F"},
}

// Colorways returns a copy of the canonical colorway set.
func Colorways() []Colorway {
	out := make([]Colorway, len(canonical))
	for i, c := range canonical {
		out[i] = slices.Clone(c)
	}
	return out
}

// CanonicalColorway returns a copy of canonical colorway i, or nil if i is
// out of range.
func CanonicalColorway(i int) Colorway {
	if i < 0 || i >= len(canonical) {
		return nil
	}
	return slices.Clone(canonical[i])
}

// maxRank is the upper bound of the rank domain remapped onto colorways.
const maxRank = 511

// ColorwayIndex picks a canonical colorway for id. A single-syllable
// identifier uses its suffix rank, longer ones the first syllable's prefix
// rank; the rank is scaled from [0, 511] onto the colorway set. Unknown
// syllables and empty identifiers select colorway 0.
func ColorwayIndex(id patp.Identifier) int {
	if len(id) == 0 {
		return 0
	}
	var rank int
	if len(id) == 1 {
		rank = patp.SuffixRank(id[0])
	} else {
		rank = patp.PrefixRank(id[0])
	}
	if rank < 0 {
		return 0
	}
	return min(rank*len(canonical)/maxRank, len(canonical)-1)
}

// SelectColorway returns the canonical colorway for id.
func SelectColorway(id patp.Identifier) Colorway {
	return CanonicalColorway(ColorwayIndex(id))
}

// Dye colorizes doc. An override colorway wins; otherwise the colorway is
// derived from id.
func Dye(doc Node, id patp.Identifier, override Colorway) Node {
	cw := override
	if len(cw) == 0 {
		cw = SelectColorway(id)
	}
	return Dip(doc, cw)
}

// Dip returns a copy of n in which every styled node has a concrete "fill"
// attribute resolved from cw. The style annotation is dropped from the copy;
// unstyled nodes are copied unchanged.
func Dip(n Node, cw Colorway) Node {
	out := Node{
		Tag:  n.Tag,
		Meta: n.Meta.clone(),
		Attr: n.Attr.Clone(),
	}
	if s := n.Meta.Style; s != nil {
		if out.Attr == nil {
			out.Attr = Attrs{}
		}
		out.Attr[AttrFill] = cw.Resolve(s.Fill)
		out.Meta.Style = nil
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Dip(c, cw)
		}
	}
	return out
}
