package repositories

import (
	"context"

	"gorm.io/gorm"

	"docsync/internal/models"
)

// HistoryRepository is deliberately append-only: entries are never edited or
// removed once written.
type HistoryRepository interface {
	Create(ctx context.Context, entry *models.HistoryEntry) error
	List(ctx context.Context) ([]models.HistoryEntry, error)
	Count(ctx context.Context) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *models.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns entries newest first, so a fresh create reads back as a
// prepend. rowid breaks same-instant ties in insertion order.
func (r *historyRepository) List(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	res := r.db.WithContext(ctx).Order("created_at desc, rowid desc").Find(&entries)
	if res.Error != nil {
		return nil, res.Error
	}
	return entries, nil
}

func (r *historyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	res := r.db.WithContext(ctx).Model(&models.HistoryEntry{}).Count(&count)
	if res.Error != nil {
		return 0, res.Error
	}
	return count, nil
}
