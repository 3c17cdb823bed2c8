package seal

import (
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/errors"
)

// Resolve maps each syllable of id to a decompressed symbol. Syllables with
// no dictionary entry, and every syllable when dict is nil, get
// [DefaultSymbol]. Results are fresh trees; dict is left untouched.
func Resolve(id patp.Identifier, dict *Dictionary) ([]Node, error) {
	out := make([]Node, 0, len(id))
	for _, syl := range id {
		sym, ok := dict.Lookup(syl)
		if !ok {
			out = append(out, DefaultSymbol())
			continue
		}
		full, err := Decompress(sym, dict.Refs)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "symbol %q", syl)
		}
		out = append(out, full)
	}
	return out, nil
}

// Decompress returns a copy of n in which every path node's "d" key has been
// replaced by the geometry it names in refs. Non-path nodes are copied as is.
func Decompress(n Node, refs map[string]string) (Node, error) {
	out := Node{
		Tag:  n.Tag,
		Meta: n.Meta.clone(),
		Attr: n.Attr.Clone(),
	}
	if n.IsDrawable() {
		key := n.Attr[AttrD]
		geometry, ok := refs[key]
		if !ok {
			return Node{}, errors.New(errors.ErrCodeMissingPathReference,
				"path reference %q not found", key)
		}
		if out.Attr == nil {
			out.Attr = Attrs{}
		}
		out.Attr[AttrD] = geometry
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			child, err := Decompress(c, refs)
			if err != nil {
				return Node{}, err
			}
			out.Children[i] = child
		}
	}
	return out, nil
}
