package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

// ParseColorway parses a colorway flag or query value. It accepts either
// the index of a canonical colorway ("3") or a comma-separated color list
// ("#fff,#4330FC"). An empty string means no override.
func ParseColorway(s string) (seal.Colorway, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		cw := seal.CanonicalColorway(i)
		if cw == nil {
			return nil, errors.New(errors.ErrCodeInvalidColorway,
				"colorway index %d out of range (0-%d)", i, len(seal.Colorways())-1)
		}
		return cw, nil
	}

	parts := strings.Split(s, ",")
	cw := make(seal.Colorway, len(parts))
	for i, p := range parts {
		cw[i] = strings.TrimSpace(p)
	}
	if err := errors.ValidateColorway(cw); err != nil {
		return nil, err
	}
	return cw, nil
}
