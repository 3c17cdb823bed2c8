package seal

// Dictionary is a symbol dictionary: one shape tree per syllable, plus a
// shared table of path geometry. Path nodes inside Mapping name a key in
// Refs through their "d" attribute instead of carrying geometry inline.
//
// A Dictionary is read-only reference data. The pipeline never mutates it,
// so one value can serve any number of concurrent renders.
type Dictionary struct {
	Mapping map[string]Node   `json:"mapping"`
	Refs    map[string]string `json:"refs"`
}

// Lookup returns the compressed symbol for syl. The returned node shares
// storage with d and must not be modified.
func (d *Dictionary) Lookup(syl string) (Node, bool) {
	if d == nil {
		return Node{}, false
	}
	n, ok := d.Mapping[syl]
	return n, ok
}

// Len returns the number of syllables with a symbol.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Mapping)
}

const defaultSymbolPath = "M64 128C99.3462 128 128 99.3462 128 64C128 28.6538 99.3462 0 64 0" +
	"C28.6538 0 0 28.6538 0 64C0 99.3462 28.6538 128 64 128Z" +
	"M81.2255 35.9706L92.5392 47.2843L75.5686 64.2549L92.5392 81.2253L81.2255 92.5391" +
	"L64.2549 75.5685L47.2843 92.5391L35.9706 81.2253L52.9412 64.2549L35.9706 47.2843" +
	"L47.2843 35.9706L64.2549 52.9412L81.2255 35.9706Z"

// DefaultSymbol returns the placeholder drawn for syllables without a
// dictionary entry: a foreground disc with a cross cut out of it. Its
// geometry is inline, so it is never decompressed. Each call returns a fresh
// tree.
func DefaultSymbol() Node {
	return Node{
		Tag: TagGroup,
		Children: []Node{{
			Tag:  TagPath,
			Meta: Meta{Style: &Style{Fill: RoleForeground}},
			Attr: Attrs{AttrD: defaultSymbolPath},
		}},
	}
}
