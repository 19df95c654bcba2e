package unit_tests

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsync/internal/models"
	"docsync/internal/services"
	"docsync/internal/tests/mocks"
)

func TestAppSettingsService_Get_Defaults(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{})

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, uint(1), settings.ID)
	assert.Equal(t, []string{"main"}, settings.MonitoredBranches)
	assert.Equal(t, "markdown", settings.OutputFormat)
	assert.True(t, settings.Preferences.APIEndpoints)
}

func TestAppSettingsService_Get_RepositoryError(t *testing.T) {
	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return nil, errors.New("database error")
		},
	}
	service := services.NewAppSettingsService(repo)

	_, err := service.Get()
	require.Error(t, err)
	assert.Equal(t, "database error", err.Error())
}

func TestAppSettingsService_Save_Success(t *testing.T) {
	repo := &mocks.AppSettingsRepositoryMock{}
	service := services.NewAppSettingsService(repo)

	saved, err := service.Save(models.AppSettings{
		RepoURL:           "  https://github.com/acme/service  ",
		MonitoredBranches: []string{" main ", "", "develop"},
		OutputFormat:      "rst",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), saved.ID)
	assert.Equal(t, "https://github.com/acme/service", saved.RepoURL)
	assert.Equal(t, []string{"main", "develop"}, saved.MonitoredBranches)
	assert.False(t, saved.UpdatedAt.IsZero())
	require.NotNil(t, repo.Saved)
	assert.Equal(t, "rst", repo.Saved.OutputFormat)
}

func TestAppSettingsService_Save_Validation(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{})

	_, err := service.Save(models.AppSettings{
		MonitoredBranches: []string{"main"},
		OutputFormat:      "pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output format")

	_, err = service.Save(models.AppSettings{
		MonitoredBranches: []string{"  ", ""},
		OutputFormat:      "markdown",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitored branch")
}

func TestAppSettingsService_PreviewDocPaths(t *testing.T) {
	dir, err := os.MkdirTemp("", "docpaths")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "guides"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "index.md"), []byte("# docs"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guides", "setup.md"), []byte("# setup"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0644))

	repo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return &models.AppSettings{
				ID:       1,
				DocPaths: []string{"docs/", "README.md"},
			}, nil
		},
	}
	service := services.NewAppSettingsService(repo)

	paths, err := service.PreviewDocPaths(dir)
	require.NoError(t, err)

	assert.Contains(t, paths, "README.md")
	assert.Contains(t, paths, filepath.Join("docs", "index.md"))
	assert.Contains(t, paths, filepath.Join("docs", "guides", "setup.md"))
	assert.NotContains(t, paths, "main.go")
}

func TestAppSettingsService_PreviewDocPaths_Validation(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{})

	_, err := service.PreviewDocPaths("  ")
	require.Error(t, err)

	_, err = service.PreviewDocPaths(filepath.Join(os.TempDir(), "definitely-missing-dir-docsync"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
