package services

import (
	"context"

	"gorm.io/gorm"

	"docsync/internal/repositories"
)

// DbServices aggregates all domain services backed by the database.
type DbServices struct {
	History     HistoryService
	AppSettings AppSettingsService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	historyRepo := repositories.NewHistoryRepository(db)
	settingsRepo := repositories.NewAppSettingsRepository(db)

	return &DbServices{
		History:     NewHistoryService(historyRepo),
		AppSettings: NewAppSettingsService(settingsRepo),
	}
}

// StartDbServices hands the wails context to every database-backed service.
func (s *DbServices) StartDbServices(ctx context.Context) {
	s.History.Startup(ctx)
	s.AppSettings.Startup(ctx)
}
