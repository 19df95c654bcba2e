package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(file))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))
}

func TestHasGitRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, HasGitRepo(dir))

	// A .git file (worktree pointer) does not count, only a directory.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: elsewhere"), 0644))
	assert.False(t, HasGitRepo(dir))

	withRepo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(withRepo, ".git"), 0755))
	assert.True(t, HasGitRepo(withRepo))
}
