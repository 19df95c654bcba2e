package utils

import (
	"os"
	"path/filepath"
)

// DirectoryExists reports whether path names an existing directory. Stat
// failures of any kind count as absent.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HasGitRepo reports whether path holds a git working copy, cheaper than
// opening the repository.
func HasGitRepo(path string) bool {
	return DirectoryExists(filepath.Join(path, ".git"))
}
