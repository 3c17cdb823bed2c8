package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"

	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

var syllableRe = regexp.MustCompile(`^[a-z]{3}$`)

// ReadDictionary decodes a JSON dictionary from r.
//
// ReadDictionary returns an INVALID_DICTIONARY error if the JSON is
// malformed, a mapping key is not a syllable, or a symbol carries a tag or
// attribute name that is unsafe to emit (see [seal.Node.CheckMarkup]).
// Path references are not
// checked; see [Validate]. ReadDictionary does not close r.
func ReadDictionary(r io.Reader) (*seal.Dictionary, error) {
	var d seal.Dictionary
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "decode")
	}
	for syl := range d.Mapping {
		if !syllableRe.MatchString(syl) {
			return nil, errors.New(errors.ErrCodeInvalidDictionary, "mapping key %q is not a syllable", syl)
		}
	}
	for _, syl := range slices.Sorted(maps.Keys(d.Mapping)) {
		if err := d.Mapping[syl].CheckMarkup(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "symbol %q", syl)
		}
	}
	if d.Mapping == nil {
		d.Mapping = map[string]seal.Node{}
	}
	if d.Refs == nil {
		d.Refs = map[string]string{}
	}
	return &d, nil
}

// ImportDictionary reads a JSON dictionary file at path.
func ImportDictionary(path string) (*seal.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Validate checks that every path node in d names an existing reference.
// The first dangling reference, in syllable order, is reported as a
// MISSING_PATH_REFERENCE error.
func Validate(d *seal.Dictionary) error {
	for _, syl := range slices.Sorted(maps.Keys(d.Mapping)) {
		if _, err := seal.Decompress(d.Mapping[syl], d.Refs); err != nil {
			return errors.Wrap(errors.ErrCodeMissingPathReference, err, "symbol %q", syl)
		}
	}
	return nil
}
