package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kodiack54/ai-ryan-5407/internal/config"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/portfolio"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/priority"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
	"github.com/Kodiack54/ai-ryan-5407/internal/sqlite"
	"github.com/Kodiack54/ai-ryan-5407/internal/transport"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.Log.Path != "" {
		if err := ensureDir(cfg.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "log path error: %v\n", err)
		} else {
			logWriter = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     14, // days
			}
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	phaseRepo := sqlite.NewPhaseRepository(db)
	depRepo := sqlite.NewDependencyRepository(db)
	focusRepo := sqlite.NewFocusRepository(db)
	bugRepo := sqlite.NewBugRepository(db)
	tradelineRepo := sqlite.NewTradelineRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)
	analysisRepo := sqlite.NewAnalysisRepository(db)

	roadmapSvc := roadmap.NewService(phaseRepo, depRepo, logger)
	prioritySvc := priority.NewService(
		phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, focusRepo,
		cfg.Priority.ToolingSlug, logger)
	portfolioSvc := portfolio.NewService(
		phaseRepo, depRepo, projectRepo, clientRepo, bugRepo, tradelineRepo, focusRepo, logger)
	watcher := todowatch.NewWatcher(
		todoRepo, phaseRepo, projectRepo, focusRepo, analysisRepo,
		cfg.Watcher.Interval, cfg.Watcher.CycleTimeout, logger)

	// Missing baseline data should not keep the HTTP surface from serving.
	if err := watcher.Initialize(context.Background()); err != nil {
		logger.Error("watcher initialization failed", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Error("watcher start failed", "error", err)
	}

	router := transport.NewServer(transport.Services{
		Portfolio: portfolioSvc,
		Priority:  prioritySvc,
		Roadmap:   roadmapSvc,
		Watcher:   watcher,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer, watcher)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, watcher *todowatch.Watcher) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	watcher.Stop()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
