package mocks

import (
	"context"

	"docsync/internal/models"
)

type AppSettingsRepositoryMock struct {
	GetFunc    func(ctx context.Context) (*models.AppSettings, error)
	UpdateFunc func(ctx context.Context, settings *models.AppSettings) error

	Saved *models.AppSettings
}

func (m *AppSettingsRepositoryMock) Get(ctx context.Context) (*models.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	if m.Saved != nil {
		return m.Saved, nil
	}
	return models.DefaultAppSettings(), nil
}

func (m *AppSettingsRepositoryMock) Update(ctx context.Context, settings *models.AppSettings) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, settings)
	}
	copied := *settings
	m.Saved = &copied
	return nil
}
