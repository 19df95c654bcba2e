package mocks

import (
	"context"

	"docsync/internal/models"
)

type HistoryRepositoryMock struct {
	CreateFunc func(ctx context.Context, entry *models.HistoryEntry) error
	ListFunc   func(ctx context.Context) ([]models.HistoryEntry, error)
	CountFunc  func(ctx context.Context) (int64, error)

	Created []models.HistoryEntry
}

func (m *HistoryRepositoryMock) Create(ctx context.Context, entry *models.HistoryEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.Created = append(m.Created, *entry)
	return nil
}

func (m *HistoryRepositoryMock) List(ctx context.Context) ([]models.HistoryEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	out := make([]models.HistoryEntry, 0, len(m.Created))
	for i := len(m.Created) - 1; i >= 0; i-- {
		out = append(out, m.Created[i])
	}
	return out, nil
}

func (m *HistoryRepositoryMock) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return int64(len(m.Created)), nil
}
