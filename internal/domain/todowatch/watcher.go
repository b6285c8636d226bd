package todowatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/google/uuid"
)

// State is the watcher lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitialized   State = "initialized"
	StateWatching      State = "watching"
	StateStopped       State = "stopped"
)

// ErrNotInitialized is returned when a check is requested before the first
// snapshot load.
var ErrNotInitialized = errors.New("todo watcher not initialized")

// minKeywordLen is the shortest phase token considered by the revisit
// detector; revisitThreshold is how many tokens a TODO must share with a
// completed phase before a revisit is suggested.
const (
	minKeywordLen    = 4
	revisitThreshold = 2
)

// Watcher polls the TODO collection, diffs it against an in-memory snapshot,
// and classifies changes. Each watcher owns its own snapshot, so independent
// watchers can coexist in tests.
type Watcher struct {
	todos    TodoRepository
	phases   PhaseRepository
	projects ProjectRepository
	focus    FocusRepository
	analyses AnalysisRepository
	logger   *slog.Logger

	interval     time.Duration
	cycleTimeout time.Duration

	// cycleMu serializes poll cycles: a timer tick that finds it held is
	// skipped rather than queued, so a slow cycle cannot pile up duplicates.
	cycleMu sync.Mutex

	mu        sync.Mutex
	state     State
	known     map[string]Todo
	lastCheck *time.Time
	stop      chan struct{}
}

// NewWatcher creates a watcher in the uninitialized state.
func NewWatcher(
	todos TodoRepository,
	phases PhaseRepository,
	projects ProjectRepository,
	focus FocusRepository,
	analyses AnalysisRepository,
	interval, cycleTimeout time.Duration,
	logger *slog.Logger,
) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		todos:        todos,
		phases:       phases,
		projects:     projects,
		focus:        focus,
		analyses:     analyses,
		logger:       logger,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		state:        StateUninitialized,
		known:        make(map[string]Todo),
	}
}

// Initialize loads the current TODO set into the snapshot.
func (w *Watcher) Initialize(ctx context.Context) error {
	todos, err := w.todos.List(ctx)
	if err != nil {
		return fmt.Errorf("loading initial TODOs: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, todo := range todos {
		w.known[todo.ID] = todo
	}
	w.state = StateInitialized

	w.logger.Info("TODO watcher initialized",
		"known_todos", len(w.known), "check_interval", w.interval)
	return nil
}

// Start arms the poll timer. The timer fires on a fixed period regardless of
// cycle duration; overlapping ticks are skipped.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateUninitialized {
		return ErrNotInitialized
	}
	if w.state == StateWatching {
		return nil
	}
	w.stop = make(chan struct{})
	w.state = StateWatching
	go w.run(w.stop)

	w.logger.Info("TODO watch cycle started", "interval", w.interval)
	return nil
}

// Stop clears the timer. An in-flight check is not interrupted; it completes
// and no further ticks follow.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateWatching {
		return
	}
	close(w.stop)
	w.stop = nil
	w.state = StateStopped
	w.logger.Info("TODO watcher stopped")
}

func (w *Watcher) run(stop chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.tick()
		case <-stop:
			return
		}
	}
}

// tick runs one timed cycle. Errors are logged and swallowed: a watcher
// failure is never fatal, the next tick simply retries.
func (w *Watcher) tick() {
	if !w.cycleMu.TryLock() {
		w.logger.Warn("previous TODO check still running, skipping tick")
		return
	}
	defer w.cycleMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.cycleTimeout)
	defer cancel()

	if _, err := w.check(ctx); err != nil {
		w.logger.Error("TODO check failed", "error", err)
	}
}

// CheckNow runs one cycle synchronously. Valid in any state after the first
// snapshot load.
func (w *Watcher) CheckNow(ctx context.Context) (*Analysis, error) {
	w.mu.Lock()
	state := w.state
	w.mu.Unlock()
	if state == StateUninitialized {
		return nil, ErrNotInitialized
	}

	w.cycleMu.Lock()
	defer w.cycleMu.Unlock()
	return w.check(ctx)
}

// Status describes the watcher for the HTTP surface.
type Status struct {
	Running       bool       `json:"running"`
	LastCheck     *time.Time `json:"lastCheck"`
	KnownTodos    int        `json:"knownTodos"`
	CheckInterval string     `json:"checkInterval"`
}

// Status reports the watcher's current state.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:       w.state == StateWatching,
		LastCheck:     w.lastCheck,
		KnownTodos:    len(w.known),
		CheckInterval: w.interval.String(),
	}
}

// check fetches the TODO set, diffs it against the snapshot, runs the
// detectors on new TODOs, and persists the analysis when notable.
func (w *Watcher) check(ctx context.Context) (*Analysis, error) {
	fetched, err := w.todos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching TODOs: %w", err)
	}

	analysis := &Analysis{
		NewTodos:         []Todo{},
		CompletedTodos:   []Todo{},
		ChangedTodos:     []StatusChange{},
		OffTrackWarnings: []OffTrackWarning{},
		RevisitNeeded:    []RevisitSuggestion{},
	}

	current := make(map[string]bool, len(fetched))
	var fresh []Todo

	w.mu.Lock()
	for _, todo := range fetched {
		current[todo.ID] = true
		known, ok := w.known[todo.ID]
		switch {
		case !ok:
			analysis.NewTodos = append(analysis.NewTodos, todo)
			fresh = append(fresh, todo)
			w.known[todo.ID] = todo
		case known.Status != todo.Status:
			analysis.ChangedTodos = append(analysis.ChangedTodos, StatusChange{Old: known, New: todo})
			w.known[todo.ID] = todo
		}
	}
	for id, todo := range w.known {
		if !current[id] {
			analysis.CompletedTodos = append(analysis.CompletedTodos, todo)
			delete(w.known, id)
		}
	}
	now := time.Now()
	w.lastCheck = &now
	w.mu.Unlock()

	if len(fresh) > 0 {
		w.runDetectors(ctx, fresh, analysis)
	}

	if len(analysis.NewTodos) > 0 {
		titles := make([]string, len(analysis.NewTodos))
		for i, todo := range analysis.NewTodos {
			titles[i] = todo.Title
		}
		w.logger.Info("new TODOs detected", "count", len(titles), "titles", titles)
	}
	if len(analysis.RevisitNeeded) > 0 {
		w.logger.Warn("phases need revisit, new TODOs on completed work",
			"count", len(analysis.RevisitNeeded))
	}
	if len(analysis.OffTrackWarnings) > 0 {
		w.logger.Warn("off-track work detected", "count", len(analysis.OffTrackWarnings))
	}

	if err := w.recordAnalysis(ctx, analysis); err != nil {
		w.logger.Error("failed to record analysis", "error", err)
	}

	return analysis, nil
}

// runDetectors applies the revisit and off-track heuristics to new TODOs.
// Detector failures are logged and do not fail the cycle.
func (w *Watcher) runDetectors(ctx context.Context, fresh []Todo, analysis *Analysis) {
	phases, err := w.phases.List(ctx)
	if err != nil {
		w.logger.Error("revisit check failed", "error", err)
		phases = nil
	}
	projects, err := w.projects.List(ctx, "", false)
	if err != nil {
		w.logger.Error("project lookup failed", "error", err)
		projects = nil
	}
	projectByID := make(map[string]*roadmap.Project, len(projects))
	for i := range projects {
		projectByID[projects[i].ID] = &projects[i]
	}

	var focusProject *roadmap.Project
	openFocus, err := w.focus.ListOpen(ctx)
	if err != nil {
		w.logger.Error("off-track check failed", "error", err)
	} else if len(openFocus) > 0 {
		focusProject = projectByID[openFocus[0].ProjectID]
	}

	for _, todo := range fresh {
		analysis.RevisitNeeded = append(analysis.RevisitNeeded,
			w.detectRevisit(todo, phases, projectByID)...)
		if warning := detectOffTrack(todo, focusProject); warning != nil {
			analysis.OffTrackWarnings = append(analysis.OffTrackWarnings, *warning)
		}
	}
}

// detectRevisit flags completed phases whose name+description shares enough
// keywords with the TODO and whose project path matches the TODO's path
// fragment. Heuristic only; false positives are acceptable.
func (w *Watcher) detectRevisit(todo Todo, phases []roadmap.Phase, projectByID map[string]*roadmap.Project) []RevisitSuggestion {
	if todo.ProjectPath == "" {
		return nil
	}
	pathFragment := lastPathSegment(todo.ProjectPath)
	todoText := strings.ToLower(todo.Title + " " + todo.Description)

	var suggestions []RevisitSuggestion
	for _, phase := range phases {
		if phase.Status != roadmap.StatusComplete {
			continue
		}
		project := projectByID[phase.ProjectID]
		if project == nil || !strings.Contains(project.ServerPath, pathFragment) {
			continue
		}

		matches := 0
		for _, keyword := range keywords(phase.Name + " " + phase.Description) {
			if strings.Contains(todoText, keyword) {
				matches++
			}
		}
		if matches >= revisitThreshold {
			suggestions = append(suggestions, RevisitSuggestion{
				Phase:   phase.Name,
				Project: project.Name,
				Todo:    todo.Title,
				Reason: fmt.Sprintf("New TODO %q may require revisiting completed phase %q",
					todo.Title, phase.Name),
			})
		}
	}
	return suggestions
}

// detectOffTrack compares the TODO's project path against the current focus
// project and warns when they diverge.
func detectOffTrack(todo Todo, focusProject *roadmap.Project) *OffTrackWarning {
	if focusProject == nil || todo.ProjectPath == "" {
		return nil
	}
	if strings.Contains(todo.ProjectPath, focusProject.Slug) {
		return nil
	}
	return &OffTrackWarning{
		Todo:         todo.Title,
		TodoProject:  todo.ProjectPath,
		CurrentFocus: focusProject.Name,
		Warning: fmt.Sprintf("Working on %q but current focus is %s",
			todo.Title, focusProject.Name),
	}
}

// recordAnalysis persists the cycle outcome. Cycles that found nothing are
// not persisted, to keep the analysis log free of noise.
func (w *Watcher) recordAnalysis(ctx context.Context, analysis *Analysis) error {
	if !analysis.Notable() {
		return nil
	}

	details, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	now := time.Now()
	rec := &AnalysisRecord{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("TODO Analysis - %s", now.Format("2006-01-02")),
		Summary:   analysis.Summary(),
		Details:   string(details),
		CreatedAt: now,
	}
	if err := w.analyses.Record(ctx, rec); err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}

	w.logger.Info("analysis recorded", "summary", rec.Summary)
	return nil
}

// keywords extracts the tokens longer than minKeywordLen from text,
// lowercased.
func keywords(text string) []string {
	var out []string
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if len(token) > minKeywordLen {
			out = append(out, token)
		}
	}
	return out
}

func lastPathSegment(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
