package todowatch

import (
	"context"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// TodoRepository reads the externally managed TODO collection.
type TodoRepository interface {
	List(ctx context.Context) ([]Todo, error)
}

// PhaseRepository provides the phase reads the detectors need.
type PhaseRepository interface {
	List(ctx context.Context) ([]roadmap.Phase, error)
}

// ProjectRepository provides project reads.
type ProjectRepository interface {
	List(ctx context.Context, clientID string, activeOnly bool) ([]roadmap.Project, error)
}

// FocusRepository reads open focus records.
type FocusRepository interface {
	ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error)
}

// AnalysisRecord is a persisted cycle analysis.
type AnalysisRecord struct {
	ID        string
	Title     string
	Summary   string
	Details   string
	CreatedAt time.Time
}

// AnalysisRepository persists notable cycle analyses.
type AnalysisRepository interface {
	Record(ctx context.Context, rec *AnalysisRecord) error
}
