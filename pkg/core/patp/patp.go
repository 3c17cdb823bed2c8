// Package patp decomposes identifiers into their ordered syllables.
//
// An identifier is written as "~zod" (a single top-level syllable) or as a
// dash-separated chain of six-letter words such as "~ridlur-figbud", where each
// word is a prefix syllable followed by a suffix syllable. [Split] turns the
// text form into a syllable sequence; [CheckShape] enforces the length rule
// the seal pipeline depends on: one syllable, or an even number of them.
//
// The package also carries the two canonical 256-entry syllable tables.
// [PrefixRank] and [SuffixRank] expose a syllable's position, which the
// colorizer uses to pick a colorway deterministically.
//
// Grammar checks are deliberately shallow: unknown syllables are still split
// and passed through, because downstream stages degrade gracefully for them.
package patp

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sigil/pkg/errors"
)

// SyllableLength is the number of letters in every syllable.
const SyllableLength = 3

// Sig is the optional leading marker of the text form.
const Sig = "~"

// Identifier is an ordered sequence of syllables.
type Identifier []string

// String renders the identifier in its canonical text form: "~zod" for a
// single syllable, "~ridlur-figbud" for longer ones.
func (id Identifier) String() string {
	if len(id) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Sig)
	for i, syl := range id {
		if i > 0 && i%2 == 0 {
			b.WriteByte('-')
		}
		b.WriteString(syl)
	}
	return b.String()
}

// Len returns the number of syllables.
func (id Identifier) Len() int { return len(id) }

// First returns the first syllable, or "" for an empty identifier.
func (id Identifier) First() string {
	if len(id) == 0 {
		return ""
	}
	return id[0]
}

// Split breaks identifier text into syllables. A leading "~" is stripped,
// words are split on "-", and each word is cut into three-letter syllables.
// Split does not validate the resulting length; see [CheckShape].
func Split(s string) (Identifier, error) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), Sig)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "identifier is empty")
	}

	var out Identifier
	for _, word := range strings.Split(s, "-") {
		if word == "" || len(word)%SyllableLength != 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"word %q is not a whole number of %d-letter syllables", word, SyllableLength)
		}
		for i := 0; i < len(word); i += SyllableLength {
			out = append(out, word[i:i+SyllableLength])
		}
	}
	return out, nil
}

// Parse accepts either identifier text or an already-split syllable sequence.
// Sequences pass through unchanged (copied, so the caller keeps ownership).
// The result always satisfies [CheckShape].
func Parse(v any) (Identifier, error) {
	var id Identifier
	switch x := v.(type) {
	case string:
		var err error
		if id, err = Split(x); err != nil {
			return nil, err
		}
	case Identifier:
		id = append(Identifier(nil), x...)
	case []string:
		id = append(Identifier(nil), x...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported identifier type %T", v)
	}
	if err := CheckShape(id); err != nil {
		return nil, err
	}
	return id, nil
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(v any) Identifier {
	id, err := Parse(v)
	if err != nil {
		panic(fmt.Sprintf("patp: %v", err))
	}
	return id
}

// CheckShape enforces the identifier length invariant: exactly one syllable,
// or a positive even number of syllables.
func CheckShape(id Identifier) error {
	if ValidCount(len(id)) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidIdentifierShape,
		"identifier has %d syllables (want 1 or an even count)", len(id))
}

// ValidCount reports whether n syllables form a well-shaped identifier.
func ValidCount(n int) bool {
	return n == 1 || (n >= 2 && n%2 == 0)
}
