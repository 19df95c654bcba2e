package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"docsync/internal/models"
	"docsync/internal/repositories"
	"docsync/internal/utils"
)

type AppSettingsService interface {
	Startup(ctx context.Context)
	Get() (*models.AppSettings, error)
	Save(settings models.AppSettings) (*models.AppSettings, error)
	PreviewDocPaths(localRepoPath string) ([]string, error)
}

type appSettingsService struct {
	appSettings repositories.AppSettingsRepository
	context     context.Context
}

func NewAppSettingsService(appSettings repositories.AppSettingsRepository) AppSettingsService {
	return &appSettingsService{appSettings: appSettings}
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *appSettingsService) Get() (*models.AppSettings, error) {
	return s.appSettings.Get(context.Background())
}

// Save replaces the single live settings instance wholesale.
func (s *appSettingsService) Save(settings models.AppSettings) (*models.AppSettings, error) {
	if settings.OutputFormat != "markdown" && settings.OutputFormat != "rst" {
		return nil, errors.New("output format must be 'markdown' or 'rst'")
	}

	branches := make([]string, 0, len(settings.MonitoredBranches))
	for _, branch := range settings.MonitoredBranches {
		if b := strings.TrimSpace(branch); b != "" {
			branches = append(branches, b)
		}
	}
	if len(branches) == 0 {
		return nil, errors.New("at least one monitored branch is required")
	}
	settings.MonitoredBranches = branches
	settings.RepoURL = strings.TrimSpace(settings.RepoURL)

	settings.ID = 1
	settings.UpdatedAt = time.Now()

	if err := s.appSettings.Update(context.Background(), &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// PreviewDocPaths expands the configured doc path patterns against a local
// checkout so the settings screen can show what a publish would touch.
func (s *appSettingsService) PreviewDocPaths(localRepoPath string) ([]string, error) {
	localRepoPath = strings.TrimSpace(localRepoPath)
	if localRepoPath == "" {
		return nil, errors.New("local repository path is required")
	}
	if !utils.DirectoryExists(localRepoPath) {
		return nil, errors.New("local repository path does not exist")
	}

	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return utils.ExpandDocPaths(localRepoPath, settings.DocPaths)
}
