package runhistory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/pkg/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "runs.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(filepath.Join("..", "..", "migrations")))
	return NewRepository(db.DB, zap.NewNop())
}

func TestRepository_CreateAndLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := &Run{
		Mode:         "historico",
		Documents:    1200,
		SIIDocuments: 1180,
		StartedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Duration:     90 * time.Second,
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &Run{
		Mode:         "actual",
		Documents:    300,
		SIIDocuments: 290,
		StartedAt:    time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Duration:     20 * time.Second,
	}
	require.NoError(t, repo.Create(ctx, second))

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "actual", latest.Mode)
	assert.Equal(t, 300, latest.Documents)
	assert.Equal(t, 20*time.Second, latest.Duration)
}
