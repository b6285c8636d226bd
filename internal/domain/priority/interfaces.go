package priority

import (
	"context"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// PhaseRepository provides the phase reads and writes the engine needs.
type PhaseRepository interface {
	Get(ctx context.Context, id string) (*roadmap.Phase, error)
	List(ctx context.Context) ([]roadmap.Phase, error)
	Update(ctx context.Context, phase *roadmap.Phase) error
}

// DependencyRepository provides dependency edge reads.
type DependencyRepository interface {
	List(ctx context.Context) ([]roadmap.Dependency, error)
}

// ProjectRepository provides project reads.
type ProjectRepository interface {
	List(ctx context.Context, clientID string, activeOnly bool) ([]roadmap.Project, error)
}

// ClientRepository provides client reads.
type ClientRepository interface {
	List(ctx context.Context) ([]roadmap.Client, error)
}

// BugRepository provides open bug reads.
type BugRepository interface {
	ListOpen(ctx context.Context) ([]roadmap.Bug, error)
}

// FocusRepository manages focus record persistence.
type FocusRepository interface {
	Create(ctx context.Context, focus *roadmap.FocusRecord) error
	ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error)
	CloseForPhase(ctx context.Context, phaseID string, completedAt time.Time) error
}
