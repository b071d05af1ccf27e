package dropdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docversions/internal/errors"
)

// navItemSelector matches the navigation bar's items inside the first list.
const navItemSelector = "li.nav-item"

// Apply inserts frag into markup as a sibling right after the navigation item
// chosen by mode. The navigation items are the li.nav-item descendants of
// the first <ul> in document order.
//
// A dropdown injected by an earlier run is removed before the items are
// collected, so a page never holds two of them. When there is no navigation
// item, or mode points past the items, the original markup is returned with
// applied set to false.
func Apply(markup string, frag Fragment, mode Mode) (out string, applied bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup, false, errors.WrapError(err, errors.CategoryMarkup, "failed to parse HTML")
	}

	removeInjected(doc)

	items := doc.Find("ul").First().Find(navItemSelector)
	idx, ok := mode.target(items.Length())
	if !ok {
		return markup, false, nil
	}

	items.Eq(idx).AfterHtml(string(frag))

	rendered, err := doc.Html()
	if err != nil {
		return markup, false, errors.WrapError(err, errors.CategoryMarkup, "failed to render HTML")
	}
	return rendered, true, nil
}

// removeInjected drops every list item owning the toggle anchor together with
// the marker comments right around it.
func removeInjected(doc *goquery.Document) {
	doc.Find("#" + ToggleID).Each(func(_ int, toggle *goquery.Selection) {
		owner := toggle.Closest("li")
		if owner.Length() == 0 {
			owner = toggle
		}
		for _, n := range owner.Nodes {
			if n.Parent == nil {
				continue
			}
			if c := adjacentComment(n, startMarkerText, func(n *html.Node) *html.Node { return n.PrevSibling }); c != nil {
				c.Parent.RemoveChild(c)
			}
			if c := adjacentComment(n, endMarkerText, func(n *html.Node) *html.Node { return n.NextSibling }); c != nil {
				c.Parent.RemoveChild(c)
			}
		}
		owner.Remove()
	})
}

// adjacentComment walks from n with step, over whitespace-only text, and
// returns the first node if it is the comment holding text.
func adjacentComment(n *html.Node, text string, step func(*html.Node) *html.Node) *html.Node {
	for s := step(n); s != nil; s = step(s) {
		switch {
		case s.Type == html.TextNode && strings.TrimSpace(s.Data) == "":
			continue
		case s.Type == html.CommentNode && s.Data == text:
			return s
		}
		return nil
	}
	return nil
}
