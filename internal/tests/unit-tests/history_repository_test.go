package unit_tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsync/internal/database"
	"docsync/internal/models"
	"docsync/internal/repositories"
)

func TestHistoryRepository_List_SameInstantKeepsInsertionOrder(t *testing.T) {
	db, err := database.Init(database.Config{DSN: "file:history_repo_test?mode=memory&cache=shared"})
	require.NoError(t, err)

	repo := repositories.NewHistoryRepository(db)
	ctx := context.Background()

	// Same creation instant on every entry forces the ordering tie-break.
	instant := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		entry := models.HistoryEntry{
			ID:           fmt.Sprintf("entry-%d", i),
			PRName:       fmt.Sprintf("PR %d", i),
			PRNumber:     i,
			DateAnalyzed: "2026-08-30",
			Status:       models.HistoryStatusCommitted,
			CreatedAt:    instant,
		}
		require.NoError(t, repo.Create(ctx, &entry))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "entry-3", entries[0].ID)
	assert.Equal(t, "entry-2", entries[1].ID)
	assert.Equal(t, "entry-1", entries[2].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
