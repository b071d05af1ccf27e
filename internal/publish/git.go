package publish

import (
	"context"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/observability"
)

// Committer commits changed files to the git work tree containing them.
type Committer struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	// Now stamps the commit; nil means time.Now.
	Now func() time.Time
}

// Commit stages paths in the work tree enclosing dir and commits them. It
// returns the zero hash and false when there was nothing to commit.
func (c *Committer) Commit(ctx context.Context, dir string, paths []string) (plumbing.Hash, bool, error) {
	if len(paths) == 0 {
		return plumbing.ZeroHash, false, nil
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			WithContext("dir", dir).Build()
	}

	w, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryGit, "failed to get git worktree").Build()
	}

	root, err := resolve(w.Filesystem.Root())
	if err != nil {
		return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve worktree root").Build()
	}

	for _, p := range paths {
		if ctx.Err() != nil {
			return plumbing.ZeroHash, false, ctx.Err()
		}
		abs, err := resolve(p)
		if err != nil {
			return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve path").
				WithContext("path", p).Build()
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryFileSystem, "path outside worktree").
				WithContext("path", p).Build()
		}
		if _, err := w.Add(filepath.ToSlash(rel)); err != nil {
			return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryGit, "failed to stage file").
				WithContext("path", rel).Build()
		}
	}

	status, err := w.Status()
	if err != nil {
		return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryGit, "failed to get git status").Build()
	}
	staged := 0
	for _, s := range status {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			staged++
		}
	}
	if staged == 0 {
		observability.InfoContext(ctx, "Nothing to commit")
		return plumbing.ZeroHash, false, nil
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	hash, err := w.Commit(c.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.AuthorName,
			Email: c.AuthorEmail,
			When:  now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, false, errors.WrapError(err, errors.CategoryGit, "failed to commit").Build()
	}

	observability.InfoContext(ctx, "Committed changed files",
		logfields.Count(staged),
		logfields.Commit(hash.String()))
	return hash, true, nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
