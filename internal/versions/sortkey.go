package versions

import (
	"sort"
	"strings"
)

// SortKey is the composite ordering key of one name: tag 0 with a parsed
// version, or tag 1 with the raw name when the name is not a version.
type SortKey struct {
	Parsed *Version
	Raw    string
}

// KeyFor builds the SortKey of name.
func KeyFor(name string) SortKey {
	v, err := ParseVersion(name)
	if err != nil {
		return SortKey{Raw: name}
	}
	return SortKey{Parsed: v, Raw: name}
}

// Tag is 0 for parsed versions and 1 otherwise.
func (k SortKey) Tag() int {
	if k.Parsed != nil {
		return 0
	}
	return 1
}

// Before reports whether k is listed ahead of o: every version before every
// non-version, newest version first, names descending within each tag. Equal
// versions spelled differently ("1.0", "1.0.0") fall back to the raw name.
func (k SortKey) Before(o SortKey) bool {
	if k.Tag() != o.Tag() {
		return k.Tag() < o.Tag()
	}
	if k.Parsed != nil {
		if c := k.Parsed.Compare(o.Parsed); c != 0 {
			return c > 0
		}
	}
	return strings.Compare(k.Raw, o.Raw) > 0
}

// SortDescending returns names ordered newest first. The input is not modified.
func SortDescending(names []string) []string {
	keys := make([]SortKey, len(names))
	for i, n := range names {
		keys[i] = KeyFor(n)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Raw
	}
	return out
}
