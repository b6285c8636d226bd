package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/stretchr/testify/require"
)

func TestDependencyRepository_AddListRemove(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewDependencyRepository(db)
	require.NoError(t, repo.Add(ctx, &roadmap.Dependency{
		PhaseID:          "ph2",
		DependsOnPhaseID: "ph1",
		Type:             roadmap.DependencyTypeBlocks,
		Notes:            "needs the API first",
		CreatedAt:        time.Now(),
	}))
	require.NoError(t, repo.Add(ctx, &roadmap.Dependency{
		PhaseID:          "ph3",
		DependsOnPhaseID: "ph1",
		Type:             roadmap.DependencyTypeBlocks,
		CreatedAt:        time.Now().Add(time.Second),
	}))

	deps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	require.Equal(t, "ph2", deps[0].PhaseID)
	require.Equal(t, "needs the API first", deps[0].Notes)

	require.NoError(t, repo.Remove(ctx, "ph2", "ph1"))

	deps, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, "ph3", deps[0].PhaseID)
}

func TestDependencyRepository_RemoveAbsentIsNoop(t *testing.T) {
	db := NewTestDB(t)
	repo := NewDependencyRepository(db)

	require.NoError(t, repo.Remove(context.Background(), "ph1", "ph2"))
}

func TestDependencyRepository_DuplicatesKept(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewDependencyRepository(db)
	dep := &roadmap.Dependency{
		PhaseID:          "ph2",
		DependsOnPhaseID: "ph1",
		Type:             roadmap.DependencyTypeBlocks,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, repo.Add(ctx, dep))
	require.NoError(t, repo.Add(ctx, dep))

	deps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 2)

	// Remove deletes every matching edge at once.
	require.NoError(t, repo.Remove(ctx, "ph2", "ph1"))
	deps, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, deps)
}
