package seal

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Element tags used by the pipeline. Dictionaries may contain any SVG tag;
// only [TagPath] nodes carry compressed geometry.
const (
	TagSVG   = "svg"
	TagGroup = "g"
	TagRect  = "rect"
	TagPath  = "path"
)

// Attribute names the pipeline reads or writes.
const (
	AttrD         = "d"
	AttrFill      = "fill"
	AttrTransform = "transform"
	AttrWidth     = "width"
	AttrHeight    = "height"
	AttrX         = "x"
	AttrY         = "y"
)

// Node is a shape tree node: an element tag, pipeline metadata, drawing
// attributes and ordered children.
//
// Nodes obtained from a [Dictionary] are shared reference data. Every stage
// that attaches per-render attributes works on a [Node.Clone].
type Node struct {
	Tag      string `json:"tag"`
	Meta     Meta   `json:"meta,omitzero"`
	Attr     Attrs  `json:"attr,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Meta holds pipeline annotations that are not drawing attributes.
type Meta struct {
	// Style is the symbolic color annotation. Nil means unstyled.
	Style *Style `json:"style,omitempty"`
	// Rotate is a per-symbol rotation in degrees, read by [Place].
	Rotate float64 `json:"rotate,omitempty"`
}

// Style names the color roles of a node.
type Style struct {
	Fill Role `json:"fill"`
}

// IsDrawable reports whether n carries path geometry.
func (n Node) IsDrawable() bool { return n.Tag == TagPath }

// Styled reports whether n carries a style annotation.
func (n Node) Styled() bool { return n.Meta.Style != nil }

// Clone returns a deep copy of n. The copy shares no maps, slices or
// pointers with n.
func (n Node) Clone() Node {
	out := Node{
		Tag:  n.Tag,
		Meta: n.Meta.clone(),
		Attr: n.Attr.Clone(),
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func (m Meta) clone() Meta {
	if m.Style != nil {
		s := *m.Style
		m.Style = &s
	}
	return m
}

// Walk calls fn for n and every descendant in depth-first, document order.
// Returning false from fn skips the node's children.
func (n Node) Walk(fn func(n Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n Node) walk(fn func(Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// CheckMarkup reports the first tag or attribute name in the tree that
// [AllowedTag] or [AllowedAttr] rejects.
func (n Node) CheckMarkup() error {
	var err error
	n.Walk(func(c Node, _ int) bool {
		if err != nil {
			return false
		}
		if !AllowedTag(c.Tag) {
			err = fmt.Errorf("tag %q is not allowed", c.Tag)
			return false
		}
		for k := range c.Attr {
			if !AllowedAttr(k) {
				err = fmt.Errorf("attribute %q on <%s> is not allowed", k, c.Tag)
				return false
			}
		}
		return true
	})
	return err
}

// unsafeElements can run script or embed foreign markup.
var unsafeElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
}

// AllowedTag reports whether tag may appear in a rendered seal.
func AllowedTag(tag string) bool {
	return SafeName(tag) && !unsafeElements[strings.ToLower(tag)]
}

// AllowedAttr reports whether name may appear in a rendered seal. Event
// handler attributes ("on...") are rejected.
func AllowedAttr(name string) bool {
	return SafeName(name) && !strings.HasPrefix(strings.ToLower(name), "on")
}

// SafeName reports whether s can be written verbatim as an element or
// attribute name: an ASCII XML name starting with a letter or '_', followed
// by letters, digits, '_', '-', '.' or ':'.
func SafeName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.' || c == ':'):
		default:
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree rooted at n.
func (n Node) Count() int {
	total := 0
	n.Walk(func(Node, int) bool { total++; return true })
	return total
}

// Attrs holds drawing attributes. Values are kept as strings so trees
// serialize the same way regardless of where the numbers came from.
type Attrs map[string]string

// Clone returns a copy of a. A nil map stays nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Keys returns attribute names in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// UnmarshalJSON accepts string, number and boolean values. Dictionaries
// exported from design tools commonly store sizes as numbers.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Attrs, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			out[k] = strconv.FormatFloat(f, 'f', -1, 64)
			continue
		}
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			out[k] = strconv.FormatBool(b)
			continue
		}
		return fmt.Errorf("attribute %q: unsupported value %s", k, v)
	}
	*a = out
	return nil
}
