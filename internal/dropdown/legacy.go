package dropdown

import "strings"

// Marker comments delimiting an injected fragment.
const (
	StartMarker = "<!-- start dropdown for versions -->"
	EndMarker   = "<!-- end dropdown for versions -->"
)

const (
	startMarkerText = " start dropdown for versions "
	endMarkerText   = " end dropdown for versions "
)

// StripLegacy removes every complete start/end marker region, markers
// included, from markup. A start marker without a matching end marker and
// everything after it are left untouched. It reports whether anything was
// removed; when nothing was, markup is returned as is.
func StripLegacy(markup string) (string, bool) {
	var b strings.Builder
	rest := markup
	stripped := false

	for {
		start := strings.Index(rest, StartMarker)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(StartMarker):], EndMarker)
		if end < 0 {
			break
		}
		if !stripped {
			b.Grow(len(markup))
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(StartMarker)+end+len(EndMarker):]
		stripped = true
	}

	if !stripped {
		return markup, false
	}
	b.WriteString(rest)
	return b.String(), true
}
