package repository

import (
	"context"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
)

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *roadmap.Client) error
	List(ctx context.Context) ([]roadmap.Client, error)
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *roadmap.Project) error
	Get(ctx context.Context, id string) (*roadmap.Project, error)
	List(ctx context.Context, clientID string, activeOnly bool) ([]roadmap.Project, error)
}

// PhaseRepository manages phase persistence. ShiftRange moves the sort_order
// of every phase in [from, to] by delta in one ranged update; to <= 0 means
// no upper bound. SupportsRelativeShift reports whether the store can express
// that relative update; callers fall back to per-row writes when it can't.
type PhaseRepository interface {
	Create(ctx context.Context, phase *roadmap.Phase) error
	Get(ctx context.Context, id string) (*roadmap.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]roadmap.Phase, error)
	List(ctx context.Context) ([]roadmap.Phase, error)
	Update(ctx context.Context, phase *roadmap.Phase) error
	SetSortOrder(ctx context.Context, id string, order int) error
	ShiftRange(ctx context.Context, projectID string, from, to, delta int) error
	SupportsRelativeShift() bool
}

// DependencyRepository manages dependency edge persistence
type DependencyRepository interface {
	Add(ctx context.Context, dep *roadmap.Dependency) error
	Remove(ctx context.Context, phaseID, dependsOnPhaseID string) error
	List(ctx context.Context) ([]roadmap.Dependency, error)
}

// FocusRepository manages focus record persistence
type FocusRepository interface {
	Create(ctx context.Context, focus *roadmap.FocusRecord) error
	ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error)
	CloseForPhase(ctx context.Context, phaseID string, completedAt time.Time) error
}

// BugRepository reads bugs (open or investigating)
type BugRepository interface {
	ListOpen(ctx context.Context) ([]roadmap.Bug, error)
}

// TradelineRepository reads tradelines
type TradelineRepository interface {
	List(ctx context.Context) ([]roadmap.Tradeline, error)
}

// TodoRepository reads the TODO collection
type TodoRepository interface {
	List(ctx context.Context) ([]todowatch.Todo, error)
}

// AnalysisRepository persists watcher cycle analyses
type AnalysisRepository interface {
	Record(ctx context.Context, rec *todowatch.AnalysisRecord) error
}
