// Package dropdown renders the "Versions" navigation dropdown and splices it
// into HTML pages after the navigation bar's items.
package dropdown

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docversions/internal/versions"
)

const (
	// ToggleID is the id of the dropdown's toggle anchor. A list item owning
	// an element with this id is a previously injected dropdown.
	ToggleID = "dropdown-versions"

	// DefaultLabel is the toggle text.
	DefaultLabel = "Versions"
)

// Fragment is a rendered dropdown, ready to be inserted into any page.
type Fragment string

// RenderOptions tunes the rendered markup.
type RenderOptions struct {
	// Label is the toggle text; empty means DefaultLabel.
	Label string
	// Markers wraps the fragment in the start/end marker comments so that
	// StripLegacy can remove it before the page is processed again.
	Markers bool
}

// Render builds the dropdown for order, linking each name to urls[name].
// The result depends only on its arguments.
func Render(order versions.Order, urls map[string]string, opts RenderOptions) Fragment {
	label := opts.Label
	if label == "" {
		label = DefaultLabel
	}

	var b strings.Builder
	if opts.Markers {
		b.WriteString(StartMarker)
	}
	b.WriteString(`<li class="nav-item dropdown">` + "\n")
	b.WriteString(`<a href="#" class="nav-link dropdown-toggle" data-bs-toggle="dropdown" role="button" aria-expanded="false" aria-haspopup="true" id="` + ToggleID + `">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString("</a>\n")
	b.WriteString(`<div class="dropdown-menu" aria-labelledby="` + ToggleID + `">` + "\n")
	for _, name := range order {
		b.WriteString(`<a class="dropdown-item" data-toggle="tooltip" title="" href="`)
		b.WriteString(html.EscapeString(urls[name]))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(name))
		b.WriteString("</a>\n")
	}
	b.WriteString("</div></li>")
	if opts.Markers {
		b.WriteString(EndMarker)
	}
	return Fragment(b.String())
}
