package roadmap

import "context"

// PhaseRepository provides persistence for phases.
type PhaseRepository interface {
	Create(ctx context.Context, phase *Phase) error
	Get(ctx context.Context, id string) (*Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]Phase, error)
	List(ctx context.Context) ([]Phase, error)
	Update(ctx context.Context, phase *Phase) error
	SetSortOrder(ctx context.Context, id string, order int) error
	ShiftRange(ctx context.Context, projectID string, from, to, delta int) error
	SupportsRelativeShift() bool
}

// DependencyRepository provides persistence for dependency edges.
type DependencyRepository interface {
	Add(ctx context.Context, dep *Dependency) error
	Remove(ctx context.Context, phaseID, dependsOnPhaseID string) error
	List(ctx context.Context) ([]Dependency, error)
}

// ProjectRepository provides read access to projects.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, clientID string, activeOnly bool) ([]Project, error)
}
