package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/portfolio"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/priority"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
	"github.com/Kodiack54/ai-ryan-5407/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db *sqlite.DB

	clientRepo  *sqlite.ClientRepository
	projectRepo *sqlite.ProjectRepository
	phaseRepo   *sqlite.PhaseRepository
	depRepo     *sqlite.DependencyRepository
	focusRepo   *sqlite.FocusRepository
	todoRepo    *sqlite.TodoRepository

	roadmapSvc   *roadmap.Service
	prioritySvc  *priority.Service
	portfolioSvc *portfolio.Service
	watcher      *todowatch.Watcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	phaseRepo := sqlite.NewPhaseRepository(db)
	depRepo := sqlite.NewDependencyRepository(db)
	focusRepo := sqlite.NewFocusRepository(db)
	bugRepo := sqlite.NewBugRepository(db)
	tradelineRepo := sqlite.NewTradelineRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)
	analysisRepo := sqlite.NewAnalysisRepository(db)

	return &testEnv{
		db:          db,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		phaseRepo:   phaseRepo,
		depRepo:     depRepo,
		focusRepo:   focusRepo,
		todoRepo:    todoRepo,
		roadmapSvc:  roadmap.NewService(phaseRepo, depRepo, nil),
		prioritySvc: priority.NewService(
			phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, focusRepo, "", nil),
		portfolioSvc: portfolio.NewService(
			phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, tradelineRepo, focusRepo, nil),
		watcher: todowatch.NewWatcher(
			todoRepo, phaseRepo, projectRepo, focusRepo, analysisRepo,
			time.Hour, time.Minute, nil),
	}
}

func (env *testEnv) seedClientProject(t *testing.T, ctx context.Context, clientID, projectID, slug string) {
	t.Helper()
	require.NoError(t, env.clientRepo.Create(ctx, &roadmap.Client{
		ID: clientID, Name: "Client " + clientID, CreatedAt: time.Now(),
	}))
	require.NoError(t, env.projectRepo.Create(ctx, &roadmap.Project{
		ID:         projectID,
		ClientID:   clientID,
		Slug:       slug,
		Name:       "Project " + slug,
		ServerPath: "/var/www/" + slug,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}))
}

func TestIntegration_RoadmapLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedClientProject(t, ctx, "c1", "p1", "acme-app")

	first, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{Name: "Schema"})
	require.NoError(t, err)
	require.Equal(t, 1, first.SortOrder)

	second, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{Name: "API"})
	require.NoError(t, err)
	require.Equal(t, 2, second.SortOrder)

	// Insert between the two; the second phase shifts down.
	middle, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{
		Name:         "Migrations",
		AfterPhaseID: first.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 2, middle.SortOrder)

	phases, err := env.phaseRepo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"Schema", "Migrations", "API"}, phaseNames(phases))
	requireDenseOrder(t, phases)

	// Move the last phase to the front.
	result, err := env.roadmapSvc.ReorderPhase(ctx, second.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 3, result.OldOrder)
	require.Equal(t, 1, result.NewOrder)

	phases, err = env.phaseRepo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"API", "Schema", "Migrations"}, phaseNames(phases))
	requireDenseOrder(t, phases)
}

func TestIntegration_PriorityFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedClientProject(t, ctx, "c1", "p1", "acme-app")
	env.seedClientProject(t, ctx, "c2", "p2", "globex-app")

	tool, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{Name: "Export tool"})
	require.NoError(t, err)
	report, err := env.roadmapSvc.InsertPhase(ctx, "p2", roadmap.InsertRequest{Name: "Monthly report"})
	require.NoError(t, err)
	_, err = env.roadmapSvc.AddDependency(ctx, report.ID, tool.ID, "needs the exporter")
	require.NoError(t, err)

	next, err := env.prioritySvc.WhatsNext(ctx)
	require.NoError(t, err)
	require.Equal(t, tool.ID, next.Recommendation.PhaseID, "cross-client unblocker wins")
	require.NotNil(t, next.ActionMessage)
	require.Equal(t, 1, next.CrossClientDependencies)

	focus, phase, err := env.prioritySvc.SetFocus(ctx, tool.ID, "unblock Globex")
	require.NoError(t, err)
	require.Equal(t, roadmap.StatusInProgress, phase.Status)
	require.Equal(t, "unblock Globex", focus.Rationale)

	require.NoError(t, env.prioritySvc.Complete(ctx, tool.ID))

	open, err := env.focusRepo.ListOpen(ctx)
	require.NoError(t, err)
	require.Empty(t, open, "completing the phase closes its focus")

	next, err = env.prioritySvc.WhatsNext(ctx)
	require.NoError(t, err)
	require.Equal(t, report.ID, next.Recommendation.PhaseID, "dependent is actionable now")
	require.Equal(t, 0, next.CrossClientDependencies)
}

func TestIntegration_StatusReport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedClientProject(t, ctx, "c1", "p1", "acme-app")

	phase, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{Name: "Build"})
	require.NoError(t, err)
	_, _, err = env.prioritySvc.SetFocus(ctx, phase.ID, "")
	require.NoError(t, err)

	report, err := env.portfolioSvc.Report(ctx, "")
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	require.Equal(t, 1, report.Summary.ActiveProjects)
	require.Len(t, report.CurrentFocus, 1)
}

func TestIntegration_TodoWatcherAgainstStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedClientProject(t, ctx, "c1", "p1", "acme-app")

	require.NoError(t, env.watcher.Initialize(ctx))

	_, err := env.db.Exec(
		`INSERT INTO todos (id, title, description, status, project_path) VALUES (?, ?, ?, ?, ?)`,
		"t1", "Payment webhook retries failing", "handler drops payment events", "pending", "/var/www/acme-app")
	require.NoError(t, err)

	// A completed phase sharing keywords with the TODO triggers a revisit.
	done, err := env.roadmapSvc.InsertPhase(ctx, "p1", roadmap.InsertRequest{
		Name:        "Payment webhook handler",
		Description: "Receive and verify payment events",
	})
	require.NoError(t, err)
	_, err = env.roadmapSvc.UpdatePhaseStatus(ctx, done.ID, roadmap.StatusComplete)
	require.NoError(t, err)

	analysis, err := env.watcher.CheckNow(ctx)
	require.NoError(t, err)
	require.Len(t, analysis.NewTodos, 1)
	require.Len(t, analysis.RevisitNeeded, 1)

	// The notable cycle lands in the analysis log.
	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM analysis_log`).Scan(&count))
	require.Equal(t, 1, count)

	// TODO resolved: it disappears from the collection.
	_, err = env.db.Exec(`DELETE FROM todos WHERE id = 't1'`)
	require.NoError(t, err)

	analysis, err = env.watcher.CheckNow(ctx)
	require.NoError(t, err)
	require.Len(t, analysis.CompletedTodos, 1)
	require.Equal(t, "t1", analysis.CompletedTodos[0].ID)
}

func phaseNames(phases []roadmap.Phase) []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name
	}
	return names
}

func requireDenseOrder(t *testing.T, phases []roadmap.Phase) {
	t.Helper()
	for i, p := range phases {
		require.Equal(t, i+1, p.SortOrder, "sort_order must stay dense and 1-based")
	}
}
