package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads the project .env if one exists. Configuration is optional,
// so a missing file is not an error.
func LoadEnv() error {
	root, err := FindProjectRoot()
	if err != nil {
		return nil
	}
	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	return godotenv.Load(envPath)
}
