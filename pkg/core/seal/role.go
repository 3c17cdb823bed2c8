package seal

import "encoding/json"

// Role is a symbolic color role. Dictionaries annotate shapes with roles
// instead of concrete colors; [Dip] resolves them against a [Colorway].
type Role uint8

const (
	// RoleOther covers "NO" and any unrecognized annotation. It resolves to
	// the last entry of a colorway.
	RoleOther Role = iota
	RoleForeground
	RoleBackground
	RoleTertiary
)

var roleNames = [...]string{
	RoleOther:      "NO",
	RoleForeground: "FG",
	RoleBackground: "BG",
	RoleTertiary:   "TC",
}

// ParseRole maps an annotation to its role. Unknown names yield [RoleOther].
func ParseRole(s string) Role {
	for r, name := range roleNames {
		if name == s {
			return Role(r)
		}
	}
	return RoleOther
}

// String returns the annotation name ("FG", "BG", "TC" or "NO").
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return roleNames[RoleOther]
}

// Index returns the colorway position r selects in a colorway of n entries.
// Roles past the end of the colorway fall back to the last entry.
func (r Role) Index(n int) int {
	if n <= 0 {
		return -1
	}
	i := n - 1
	switch r {
	case RoleForeground:
		i = 0
	case RoleBackground:
		i = 1
	case RoleTertiary:
		i = 2
	}
	return min(i, n-1)
}

// MarshalJSON encodes r as its annotation name.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes an annotation name. Non-string values are rejected;
// unknown strings decode to [RoleOther].
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}
