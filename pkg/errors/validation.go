package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds identifier text accepted from the outside world.
// The longest well-formed identifiers are a few dozen characters.
const maxIdentifierLength = 128

// identifierRegex matches "~zod", "~marzod", "~ridlur-figbud" and longer
// dash-separated chains of lowercase letters. The leading sig is optional.
var identifierRegex = regexp.MustCompile(`^~?[a-z]+(-[a-z]+)*$`)

// ValidateIdentifierText performs a conservative syntactic check on identifier
// text before it reaches the decomposer.
//
// The validation rules are:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 128 characters
//   - Only lowercase letters separated by single dashes, optionally prefixed by "~"
//
// It does not check syllables against the syllable tables; unknown syllables
// render with fallbacks.
func ValidateIdentifierText(s string) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(s) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	if !identifierRegex.MatchString(s) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", s)
	}

	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColors are the CSS keywords accepted in colorway overrides.
var namedColors = map[string]bool{
	"black": true, "white": true, "none": true, "transparent": true,
	"red": true, "green": true, "blue": true, "gray": true, "grey": true,
}

// ValidateColor validates a single colorway entry. Hex colors and a small set
// of CSS keywords are accepted.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidColorway, "color cannot be empty")
	}
	if hexColorRegex.MatchString(c) || namedColors[strings.ToLower(c)] {
		return nil
	}
	return New(ErrCodeInvalidColorway, "invalid color: %q", c)
}

// ValidateColorway validates every entry of a colorway override.
// A colorway needs at least a foreground and a background entry.
func ValidateColorway(colors []string) error {
	if len(colors) < 2 {
		return New(ErrCodeInvalidColorway, "colorway needs at least 2 colors, got %d", len(colors))
	}
	for _, c := range colors {
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}
