package versions

import (
	"fmt"
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// releasePrefix matches the optional "v", the epoch and the release segment
// at the start of a version.
var releasePrefix = regexp.MustCompile(`^[vV]?(?:(\d+)!)?(\d+(?:\.\d+)*)`)

// Version is a parsed PEP 440 version. Epoch and release numbers are kept as
// digit strings so that any length compares correctly; the pre, post, dev
// and local segments are parsed by pep440 over a zero release.
type Version struct {
	epoch   string
	release []string
	rest    pep440.Version
}

// ParseVersion parses s as a PEP 440 version, accepting the same spellings
// as pip: optional leading "v", alternate pre/post/dev labels, "-", "_" and
// "." separators, any letter case.
func ParseVersion(s string) (*Version, error) {
	trimmed := strings.TrimSpace(s)
	m := releasePrefix.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return nil, fmt.Errorf("invalid version %q", s)
	}

	suffix := trimmed[m[1]:]
	if strings.Contains(suffix, "!") {
		return nil, fmt.Errorf("invalid version %q", s)
	}
	rest, err := pep440.Parse("0" + suffix)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}

	v := &Version{rest: rest}
	if m[2] >= 0 {
		v.epoch = trimZeros(trimmed[m[2]:m[3]])
	}
	for _, n := range strings.Split(trimmed[m[4]:m[5]], ".") {
		v.release = append(v.release, trimZeros(n))
	}
	return v, nil
}

// Compare returns -1, 0 or 1 as v orders before, equal to or after o.
// Trailing zero release segments are insignificant.
func (v *Version) Compare(o *Version) int {
	if c := compareDigits(v.epoch, o.epoch); c != 0 {
		return c
	}
	for i := 0; i < max(len(v.release), len(o.release)); i++ {
		if c := compareDigits(segment(v.release, i), segment(o.release, i)); c != 0 {
			return c
		}
	}
	return v.rest.Compare(o.rest)
}

func segment(release []string, i int) string {
	if i < len(release) {
		return release[i]
	}
	return ""
}

// trimZeros drops leading zeros; zero becomes the empty string.
func trimZeros(digits string) string {
	return strings.TrimLeft(digits, "0")
}

// compareDigits compares zero-trimmed decimal strings numerically.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
