package unit_tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsync/internal/services"
)

func commitFile(t *testing.T, w *git.Worktree, dir, name, content, message string, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	_, err := w.Add(name)
	require.NoError(t, err)

	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
		Parents: parents,
	})
	require.NoError(t, err)
	return hash
}

func TestGitService_ValidateRepository(t *testing.T) {
	gs := services.NewGitService()

	err := gs.ValidateRepository("")
	require.Error(t, err)

	dir, err := os.MkdirTemp("", "notgit")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	err = gs.ValidateRepository(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid git repository")
}

func TestGitService_ListBranchesByPath(t *testing.T) {
	dir, err := os.MkdirTemp("", "gitbranches")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)

	commitFile(t, w, dir, "README.md", "# repo\n", "initial commit")

	gs := services.NewGitService()
	branches, err := gs.ListBranchesByPath(dir)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.NotEmpty(t, branches[0].Name)
	assert.False(t, branches[0].LastCommitDate.IsZero())
}

func TestGitService_RecentMerges(t *testing.T) {
	dir, err := os.MkdirTemp("", "gitmerges")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)

	base := commitFile(t, w, dir, "README.md", "# repo\n", "initial commit")
	feature := commitFile(t, w, dir, "api/handler.go", "package api\n", "add handler", base)

	// Synthesized merge commit shaped like a squashed GitHub merge.
	merge := commitFile(t, w, dir, "go.mod", "module example\n",
		"Merge pull request #487 from acme/rate-limiting\n\nAdd rate limiting", feature, base)
	require.False(t, merge.IsZero())

	head, err := repo.Head()
	require.NoError(t, err)
	branch := head.Name().Short()

	gs := services.NewGitService()
	merged, err := gs.RecentMerges(dir, []string{branch, "", "missing-branch"}, 10)
	require.NoError(t, err)
	require.Len(t, merged, 1)

	pr := merged[0]
	assert.Equal(t, 487, pr.PRNumber)
	assert.Equal(t, "Add rate limiting", pr.Title)
	assert.Equal(t, "Test", pr.Author)
	assert.Equal(t, branch, pr.Branch)
	assert.Equal(t, "pending", pr.Status)
	assert.Equal(t, merge.String(), pr.ID)
}

func TestGitService_RecentMerges_EmptyPath(t *testing.T) {
	gs := services.NewGitService()
	_, err := gs.RecentMerges("", []string{"main"}, 5)
	require.Error(t, err)
}

func TestGitService_RecentMerges_RejectsNonRepoDirectory(t *testing.T) {
	dir, err := os.MkdirTemp("", "notgit")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	gs := services.NewGitService()
	_, err = gs.RecentMerges(dir, []string{"main"}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid git repository")
}
