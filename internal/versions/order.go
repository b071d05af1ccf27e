// Package versions resolves the ordered list of version directories that a
// documentation site tree publishes.
//
// The order is the caller's pinned names (in the caller's order, when they
// exist) followed by every other matching directory sorted newest first:
// names that parse as PEP 440 versions by version value, then the rest by
// descending name.
package versions

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/util/sets"
)

// Order is the final sequence of version names shown in the dropdown.
type Order []string

// Candidate is one directory entry considered for selection.
type Candidate struct {
	Name  string
	IsDir bool
}

// Options controls version selection.
type Options struct {
	// Pattern must match the whole directory name; see CompilePattern.
	Pattern *regexp.Regexp
	// Pinned names lead the order, in this order, when present.
	Pinned []string
	// BaseURL is prefixed verbatim to every name to build its link.
	BaseURL string
	// Constraint optionally narrows the non-pinned names.
	Constraint *Constraint
}

// Resolution is the outcome of one resolve pass.
type Resolution struct {
	Order Order
	// URLs maps each name in Order to its link.
	URLs map[string]string
	// Matched lists every directory that matched the pattern, before the
	// constraint was applied, sorted by name.
	Matched []string
}

// CompilePattern compiles a directory-name pattern anchored at both ends,
// so "2.*" never selects "12.0" or "2.0-old" by partial match.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, errors.ConfigRequired("pattern")
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid directory pattern").
			WithContext("pattern", pattern)
	}
	return re, nil
}

// ListCandidates reads root and reports each entry, following symlinks to
// decide whether an entry is a directory. A listing failure is fatal.
func ListCandidates(root string) ([]Candidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.RootUnreadable(root, err)
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(filepath.Join(root, e.Name())); statErr == nil {
				isDir = info.IsDir()
			}
		}
		out = append(out, Candidate{Name: e.Name(), IsDir: isDir})
	}
	return out, nil
}

// ListAndResolve lists root and resolves its version directories.
func ListAndResolve(root string, opts Options) (Resolution, error) {
	candidates, err := ListCandidates(root)
	if err != nil {
		return Resolution{}, err
	}
	return Resolve(candidates, opts), nil
}

// Resolve selects the matching directories among candidates and orders them.
// An empty selection yields an empty Order, not an error.
func Resolve(candidates []Candidate, opts Options) Resolution {
	matched := sets.New[string]()
	var matchedNames []string
	for _, c := range candidates {
		if !c.IsDir {
			continue
		}
		if opts.Pattern != nil && !opts.Pattern.MatchString(c.Name) {
			continue
		}
		if matched.Has(c.Name) {
			continue
		}
		matched.Add(c.Name)
		matchedNames = append(matchedNames, c.Name)
	}
	sort.Strings(matchedNames)

	order := make(Order, 0, len(matchedNames))
	pinned := sets.New[string]()
	for _, name := range opts.Pinned {
		if matched.Has(name) && !pinned.Has(name) {
			pinned.Add(name)
			order = append(order, name)
		}
	}

	remainder := make([]string, 0, len(matchedNames))
	for _, name := range matchedNames {
		if pinned.Has(name) || !opts.Constraint.Allows(name) {
			continue
		}
		remainder = append(remainder, name)
	}
	order = append(order, SortDescending(remainder)...)

	urls := make(map[string]string, len(order))
	for _, name := range order {
		urls[name] = opts.BaseURL + name
	}

	return Resolution{Order: order, URLs: urls, Matched: matchedNames}
}
