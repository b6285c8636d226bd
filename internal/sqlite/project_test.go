package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "Client One")

	repo := NewProjectRepository(db)
	project := &roadmap.Project{
		ID:         "p1",
		ClientID:   "c1",
		Slug:       "billing-portal",
		Name:       "Billing Portal",
		ServerPath: "/var/www/billing-portal",
		SortOrder:  2,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, project))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "billing-portal", got.Slug)
	require.Equal(t, "/var/www/billing-portal", got.ServerPath)
	require.True(t, got.IsActive)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_CreateViolations(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "Client One")

	repo := NewProjectRepository(db)
	base := roadmap.Project{
		ClientID:  "c1",
		Slug:      "portal",
		Name:      "Portal",
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	orphan := base
	orphan.ID = "p0"
	orphan.ClientID = "missing"
	require.ErrorIs(t, repo.Create(ctx, &orphan), repository.ErrForeignKeyViolation)

	first := base
	first.ID = "p1"
	require.NoError(t, repo.Create(ctx, &first))

	dup := base
	dup.ID = "p2"
	require.ErrorIs(t, repo.Create(ctx, &dup), repository.ErrInvalidInput)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "Client One")
	insertClient(t, db, "c2", "Client Two")

	repo := NewProjectRepository(db)
	projects := []roadmap.Project{
		{ID: "p1", ClientID: "c1", Slug: "alpha", Name: "Alpha", SortOrder: 1, IsActive: true},
		{ID: "p2", ClientID: "c1", Slug: "beta", Name: "Beta", SortOrder: 2, IsActive: false},
		{ID: "p3", ClientID: "c2", Slug: "gamma", Name: "Gamma", SortOrder: 1, IsActive: true},
	}
	for i := range projects {
		projects[i].CreatedAt = time.Now()
		require.NoError(t, repo.Create(ctx, &projects[i]))
	}

	all, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := repo.List(ctx, "c1", false)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	active, err := repo.List(ctx, "c1", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "alpha", active[0].Slug)
}
