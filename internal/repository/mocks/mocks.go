package mocks

import (
	"context"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
	"github.com/stretchr/testify/mock"
)

// PhaseRepository is a mock for repository.PhaseRepository.
type PhaseRepository struct {
	mock.Mock
	RelativeShift bool
}

func (m *PhaseRepository) Create(ctx context.Context, phase *roadmap.Phase) error {
	args := m.Called(ctx, phase)
	return args.Error(0)
}

func (m *PhaseRepository) Get(ctx context.Context, id string) (*roadmap.Phase, error) {
	args := m.Called(ctx, id)
	if phase, ok := args.Get(0).(*roadmap.Phase); ok {
		return phase, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PhaseRepository) ListByProject(ctx context.Context, projectID string) ([]roadmap.Phase, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]roadmap.Phase); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PhaseRepository) List(ctx context.Context) ([]roadmap.Phase, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.Phase); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PhaseRepository) Update(ctx context.Context, phase *roadmap.Phase) error {
	args := m.Called(ctx, phase)
	return args.Error(0)
}

func (m *PhaseRepository) SetSortOrder(ctx context.Context, id string, order int) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

func (m *PhaseRepository) ShiftRange(ctx context.Context, projectID string, from, to, delta int) error {
	args := m.Called(ctx, projectID, from, to, delta)
	return args.Error(0)
}

func (m *PhaseRepository) SupportsRelativeShift() bool {
	return m.RelativeShift
}

// DependencyRepository is a mock for repository.DependencyRepository.
type DependencyRepository struct {
	mock.Mock
}

func (m *DependencyRepository) Add(ctx context.Context, dep *roadmap.Dependency) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}

func (m *DependencyRepository) Remove(ctx context.Context, phaseID, dependsOnPhaseID string) error {
	args := m.Called(ctx, phaseID, dependsOnPhaseID)
	return args.Error(0)
}

func (m *DependencyRepository) List(ctx context.Context) ([]roadmap.Dependency, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.Dependency); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, project *roadmap.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*roadmap.Project, error) {
	args := m.Called(ctx, id)
	if project, ok := args.Get(0).(*roadmap.Project); ok {
		return project, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, clientID string, activeOnly bool) ([]roadmap.Project, error) {
	args := m.Called(ctx, clientID, activeOnly)
	if list, ok := args.Get(0).([]roadmap.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ClientRepository is a mock for repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, client *roadmap.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context) ([]roadmap.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FocusRepository is a mock for repository.FocusRepository.
type FocusRepository struct {
	mock.Mock
}

func (m *FocusRepository) Create(ctx context.Context, focus *roadmap.FocusRecord) error {
	args := m.Called(ctx, focus)
	return args.Error(0)
}

func (m *FocusRepository) ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.FocusRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FocusRepository) CloseForPhase(ctx context.Context, phaseID string, completedAt time.Time) error {
	args := m.Called(ctx, phaseID, completedAt)
	return args.Error(0)
}

// BugRepository is a mock for repository.BugRepository.
type BugRepository struct {
	mock.Mock
}

func (m *BugRepository) ListOpen(ctx context.Context) ([]roadmap.Bug, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.Bug); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TradelineRepository is a mock for repository.TradelineRepository.
type TradelineRepository struct {
	mock.Mock
}

func (m *TradelineRepository) List(ctx context.Context) ([]roadmap.Tradeline, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]roadmap.Tradeline); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TodoRepository is a mock for repository.TodoRepository.
type TodoRepository struct {
	mock.Mock
}

func (m *TodoRepository) List(ctx context.Context) ([]todowatch.Todo, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]todowatch.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// AnalysisRepository is a mock for repository.AnalysisRepository.
type AnalysisRepository struct {
	mock.Mock
}

func (m *AnalysisRepository) Record(ctx context.Context, rec *todowatch.AnalysisRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
