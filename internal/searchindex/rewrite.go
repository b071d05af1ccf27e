// Package searchindex points the URLs in each version's search.json at that
// version's own path.
package searchindex

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/versions"
)

// FileName is the search index file looked up in every version directory.
const FileName = "search.json"

// Rewrite inserts "version/" after every occurrence of baseURL in content
// that is not already immediately followed by version. Running it on its own
// output changes nothing.
func Rewrite(content, version, baseURL string) string {
	if baseURL == "" {
		return content
	}

	var b strings.Builder
	rest := content
	changed := false

	for {
		i := strings.Index(rest, baseURL)
		if i < 0 {
			break
		}
		end := i + len(baseURL)
		if !changed {
			b.Grow(len(content) + len(version) + 1)
		}
		b.WriteString(rest[:end])
		if !strings.HasPrefix(rest[end:], version) {
			b.WriteString(version)
			b.WriteByte('/')
		}
		rest = rest[end:]
		changed = true
	}

	if !changed {
		return content
	}
	b.WriteString(rest)
	return b.String()
}

// RewriteSearchIndex rewrites the file at path in place and reports whether
// its content changed. An unchanged file is not written.
func RewriteSearchIndex(path, version, baseURL string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.FileReadFailed(path, err)
	}

	updated := Rewrite(string(data), version, baseURL)
	if updated == string(data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, errors.FileReadFailed(path, err)
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, errors.FileWriteFailed(path, err)
	}
	return true, nil
}

// Result is the outcome for one version's search index.
type Result struct {
	Version string `json:"version"`
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

// RewriteAll rewrites root/<version>/search.json for every version in order
// that has one. Failures are logged and recorded per file; they never stop
// the remaining versions.
func RewriteAll(ctx context.Context, root string, order versions.Order, baseURL string) []Result {
	var results []Result
	for _, version := range order {
		if ctx.Err() != nil {
			break
		}

		path := filepath.Join(root, version, FileName)
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}

		changed, err := RewriteSearchIndex(path, version, baseURL)
		res := Result{Version: version, Path: path, Changed: changed}
		switch {
		case err != nil:
			res.Error = err.Error()
			observability.ErrorContext(ctx, "Search index rewrite failed", logfields.File(path), logfields.Version(version), logfields.Error(err))
		case changed:
			observability.InfoContext(ctx, "Updated URLs in search index", logfields.File(path), logfields.Version(version))
		default:
			observability.DebugContext(ctx, "No URLs to update in search index", logfields.File(path), logfields.Version(version))
		}
		results = append(results, res)
	}
	return results
}
