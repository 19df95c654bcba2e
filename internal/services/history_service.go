package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docsync/internal/models"
	"docsync/internal/repositories"
)

// HistoryService is the client-local ledger of past analysis/publish
// outcomes. It only grows: Prepend and List are the whole surface.
type HistoryService interface {
	Startup(ctx context.Context)
	List() ([]models.HistoryEntry, error)
	Prepend(entry models.HistoryEntry) (*models.HistoryEntry, error)
	Count() (int64, error)
}

type historyService struct {
	repo repositories.HistoryRepository
	ctx  context.Context
}

func NewHistoryService(repo repositories.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// List returns the ledger newest first.
func (s *historyService) List() ([]models.HistoryEntry, error) {
	return s.repo.List(context.Background())
}

// Prepend appends one immutable entry to the front of the ledger.
func (s *historyService) Prepend(entry models.HistoryEntry) (*models.HistoryEntry, error) {
	if strings.TrimSpace(entry.PRName) == "" {
		return nil, errors.New("pr name is required")
	}
	switch entry.Status {
	case models.HistoryStatusPending, models.HistoryStatusCommitted, models.HistoryStatusDiscarded:
	default:
		return nil, errors.New("status must be 'pending', 'committed', or 'discarded'")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.DateAnalyzed == "" {
		entry.DateAnalyzed = time.Now().Format("2006-01-02")
	}

	if err := s.repo.Create(context.Background(), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *historyService) Count() (int64, error) {
	return s.repo.Count(context.Background())
}
