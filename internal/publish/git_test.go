package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docversions/internal/errors"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	page := filepath.Join(dir, "site", "1.0", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(page), 0o755))
	require.NoError(t, os.WriteFile(page, []byte("<ul></ul>"), 0o644))

	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("site/1.0/index.html")
	require.NoError(t, err)
	_, err = w.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, repo
}

func TestCommitter_CommitsChangedFiles(t *testing.T) {
	dir, repo := initRepo(t)
	page := filepath.Join(dir, "site", "1.0", "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<ul><li>v</li></ul>"), 0o644))
	index := filepath.Join(dir, "site", "1.0", "search.json")
	require.NoError(t, os.WriteFile(index, []byte("{}"), 0o644))

	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := &Committer{
		Message:     "docs: update versions dropdown",
		AuthorName:  "docversions",
		AuthorEmail: "docversions@localhost",
		Now:         func() time.Time { return when },
	}

	hash, committed, err := c.Commit(context.Background(), filepath.Join(dir, "site"), []string{page, index})
	require.NoError(t, err)
	require.True(t, committed)

	commit, err := repo.CommitObject(hash)
	require.NoError(t, err)
	assert.Equal(t, "docs: update versions dropdown", commit.Message)
	assert.Equal(t, "docversions", commit.Author.Name)
	assert.True(t, when.Equal(commit.Author.When))

	files, err := commit.Files()
	require.NoError(t, err)
	var names []string
	require.NoError(t, files.ForEach(func(f *object.File) error {
		names = append(names, f.Name)
		return nil
	}))
	assert.ElementsMatch(t, []string{"site/1.0/index.html", "site/1.0/search.json"}, names)
}

func TestCommitter_NothingToCommit(t *testing.T) {
	dir, _ := initRepo(t)
	c := &Committer{Message: "m", AuthorName: "a", AuthorEmail: "a@b"}

	_, committed, err := c.Commit(context.Background(), dir, []string{filepath.Join(dir, "site", "1.0", "index.html")})
	require.NoError(t, err)
	assert.False(t, committed)

	_, committed, err = c.Commit(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitter_NotARepository(t *testing.T) {
	dir := t.TempDir()
	c := &Committer{Message: "m", AuthorName: "a", AuthorEmail: "a@b"}

	_, _, err := c.Commit(context.Background(), dir, []string{filepath.Join(dir, "x.html")})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryGit))
}
