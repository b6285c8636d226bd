// Package testserver spins up the full HTTP stack against an in-memory
// database for integration-style tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/portfolio"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/priority"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
	"github.com/Kodiack54/ai-ryan-5407/internal/sqlite"
	"github.com/Kodiack54/ai-ryan-5407/internal/transport"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Watcher *todowatch.Watcher
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	phaseRepo := sqlite.NewPhaseRepository(db)
	depRepo := sqlite.NewDependencyRepository(db)
	focusRepo := sqlite.NewFocusRepository(db)
	bugRepo := sqlite.NewBugRepository(db)
	tradelineRepo := sqlite.NewTradelineRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)
	analysisRepo := sqlite.NewAnalysisRepository(db)

	roadmapSvc := roadmap.NewService(phaseRepo, depRepo, nil)
	prioritySvc := priority.NewService(
		phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, focusRepo,
		"kodiack-dashboard-5500", nil)
	portfolioSvc := portfolio.NewService(
		phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, tradelineRepo, focusRepo, nil)
	watcher := todowatch.NewWatcher(
		todoRepo, phaseRepo, projectRepo, focusRepo, analysisRepo,
		time.Hour, time.Minute, nil)
	require.NoError(t, watcher.Initialize(context.Background()))

	server := httptest.NewServer(transport.NewServer(transport.Services{
		Portfolio: portfolioSvc,
		Priority:  prioritySvc,
		Roadmap:   roadmapSvc,
		Watcher:   watcher,
	}, nil))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Watcher: watcher,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
