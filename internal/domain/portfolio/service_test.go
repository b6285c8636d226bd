package portfolio_test

import (
	"context"
	"testing"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/portfolio"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

type portfolioFixture struct {
	phases     *mocks.PhaseRepository
	deps       *mocks.DependencyRepository
	projects   *mocks.ProjectRepository
	clients    *mocks.ClientRepository
	bugs       *mocks.BugRepository
	tradelines *mocks.TradelineRepository
	focus      *mocks.FocusRepository
}

func newPortfolioFixture() *portfolioFixture {
	return &portfolioFixture{
		phases:     &mocks.PhaseRepository{},
		deps:       &mocks.DependencyRepository{},
		projects:   &mocks.ProjectRepository{},
		clients:    &mocks.ClientRepository{},
		bugs:       &mocks.BugRepository{},
		tradelines: &mocks.TradelineRepository{},
		focus:      &mocks.FocusRepository{},
	}
}

func (f *portfolioFixture) service() *portfolio.Service {
	return portfolio.NewService(f.phases, f.deps, f.projects, f.clients, f.bugs, f.tradelines, f.focus, nil)
}

func TestPortfolioService_Report(t *testing.T) {
	ctx := context.Background()
	f := newPortfolioFixture()

	clients := []roadmap.Client{
		{ID: "c1", Name: "Acme"},
		{ID: "c2", Name: "Globex"},
	}
	projects := []roadmap.Project{
		{ID: "p1", ClientID: "c1", Slug: "acme-app", Name: "Acme App", IsActive: true},
		{ID: "p2", ClientID: "c2", Slug: "globex-app", Name: "Globex App", IsActive: true},
	}
	phases := []roadmap.Phase{
		{ID: "ph1", ProjectID: "p1", Name: "Done", Status: roadmap.StatusComplete, SortOrder: 1},
		{ID: "ph2", ProjectID: "p1", Name: "Busy", Status: roadmap.StatusInProgress, SortOrder: 2},
		{ID: "ph3", ProjectID: "p2", Name: "Waiting", Status: roadmap.StatusPending, SortOrder: 1},
	}
	deps := []roadmap.Dependency{
		{PhaseID: "ph3", DependsOnPhaseID: "ph2"},
	}
	bugs := []roadmap.Bug{
		{ID: "b1", Title: "Crash", Severity: "critical", Status: "open", ProjectPath: "/var/www/acme-app"},
		{ID: "b2", Title: "Slow", Severity: "low", Status: "open", ProjectPath: "/var/www/acme-app"},
	}
	tradelines := []roadmap.Tradeline{
		{ID: "tl1", Name: "Alpha Line", Status: "live"},
		{ID: "tl2", Name: "Beta Line", Status: "pending"},
	}
	focus := []roadmap.FocusRecord{
		{ID: "f1", ProjectID: "p1", PhaseID: "ph2"},
	}

	f.projects.On("List", ctx, "", true).Return(projects, nil)
	f.projects.On("List", ctx, "", false).Return(projects, nil)
	f.phases.On("List", ctx).Return(phases, nil)
	f.deps.On("List", ctx).Return(deps, nil)
	f.clients.On("List", ctx).Return(clients, nil)
	f.bugs.On("ListOpen", ctx).Return(bugs, nil)
	f.tradelines.On("List", ctx).Return(tradelines, nil)
	f.focus.On("ListOpen", ctx).Return(focus, nil)

	report, err := f.service().Report(ctx, "")
	require.NoError(t, err)
	require.Len(t, report.Projects, 2)

	acme := report.Projects[0]
	require.Equal(t, "acme-app", acme.Slug)
	require.Len(t, acme.Phases, 2)
	require.False(t, acme.Phases[0].IsBlocked)
	require.Equal(t, 2, acme.Stats.TotalPhases)
	require.Equal(t, 1, acme.Stats.Completed)
	require.Equal(t, 1, acme.Stats.InProgress)
	require.Equal(t, 2, acme.Stats.OpenBugs)
	require.Equal(t, 1, acme.Stats.CriticalBugs)

	globex := report.Projects[1]
	require.Len(t, globex.Phases, 1)
	require.True(t, globex.Phases[0].IsBlocked, "ph3 waits on the unfinished ph2")
	require.Equal(t, 1, globex.Stats.Blocked)
	require.Equal(t, 0, globex.Stats.OpenBugs)

	require.Equal(t, 2, report.Summary.TotalProjects)
	require.Equal(t, 1, report.Summary.ActiveProjects)
	require.Equal(t, 3, report.Summary.TotalPhases)
	require.Equal(t, 1, report.Summary.CompletedPhases)
	require.Equal(t, 1, report.Summary.BlockedPhases)
	require.Equal(t, 1, report.Summary.LiveTradelines)

	require.Len(t, report.CurrentFocus, 1)
	require.Equal(t, "f1", report.CurrentFocus[0].ID)
	require.Len(t, report.Tradelines, 2)
}

func TestPortfolioService_Report_ClientScope(t *testing.T) {
	ctx := context.Background()
	f := newPortfolioFixture()

	clients := []roadmap.Client{
		{ID: "c1", Name: "Acme"},
		{ID: "c2", Name: "Globex"},
	}
	allProjects := []roadmap.Project{
		{ID: "p1", ClientID: "c1", Slug: "acme-app", Name: "Acme App", IsActive: true},
		{ID: "p2", ClientID: "c2", Slug: "globex-app", Name: "Globex App", IsActive: true},
	}
	phases := []roadmap.Phase{
		{ID: "ph1", ProjectID: "p1", Name: "Mine", Status: roadmap.StatusPending, SortOrder: 1},
		{ID: "ph2", ProjectID: "p2", Name: "Theirs", Status: roadmap.StatusPending, SortOrder: 1},
	}
	// ph1 is blocked by the other client's phase. The graph must still see it
	// even when the report is scoped to c1.
	deps := []roadmap.Dependency{
		{PhaseID: "ph1", DependsOnPhaseID: "ph2"},
	}
	focus := []roadmap.FocusRecord{
		{ID: "f1", ProjectID: "p1", PhaseID: "ph1"},
		{ID: "f2", ProjectID: "p2", PhaseID: "ph2"},
	}

	f.projects.On("List", ctx, "c1", true).Return(allProjects[:1], nil)
	f.projects.On("List", ctx, "", false).Return(allProjects, nil)
	f.phases.On("List", ctx).Return(phases, nil)
	f.deps.On("List", ctx).Return(deps, nil)
	f.clients.On("List", ctx).Return(clients, nil)
	f.bugs.On("ListOpen", ctx).Return([]roadmap.Bug{}, nil)
	f.tradelines.On("List", ctx).Return([]roadmap.Tradeline{}, nil)
	f.focus.On("ListOpen", ctx).Return(focus, nil)

	report, err := f.service().Report(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "c1", report.ClientID)
	require.Len(t, report.Projects, 1)
	require.True(t, report.Projects[0].Phases[0].IsBlocked,
		"blocking by out-of-scope phases is still derived")

	require.Len(t, report.CurrentFocus, 1, "focus records outside the scope are dropped")
	require.Equal(t, "f1", report.CurrentFocus[0].ID)
}
