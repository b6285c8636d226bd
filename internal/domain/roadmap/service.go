package roadmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/repository/repoerr"
	"github.com/google/uuid"
)

// Service mutates project roadmaps while preserving the dense per-project
// phase ordering: after any successful operation the sort_order values of a
// project's phases are exactly 1..N.
type Service struct {
	phases PhaseRepository
	deps   DependencyRepository
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new roadmap service.
func NewService(phases PhaseRepository, deps DependencyRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		phases: phases,
		deps:   deps,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// projectLock returns the single-flight lock serializing ordering mutations
// for one project. The store does not span the shift-then-write sequence in a
// way visible to us, so concurrent reorders on the same project are
// serialized here instead.
func (s *Service) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}

// InsertRequest defines phase insertion inputs. AfterPhaseID and
// BeforePhaseID are mutually exclusive; with neither, the phase is appended.
type InsertRequest struct {
	Name          string
	Description   string
	Status        PhaseStatus
	AfterPhaseID  string
	BeforePhaseID string
}

// InsertPhase inserts a new phase relative to an anchor. An anchor id that
// doesn't resolve to a phase in the project degrades to append.
func (s *Service) InsertPhase(ctx context.Context, projectID string, req InsertRequest) (*Phase, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if req.AfterPhaseID != "" && req.BeforePhaseID != "" {
		return nil, ErrInvalidInput
	}
	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidInput
	}

	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases for project %s: %w", projectID, err)
	}

	newOrder := maxSortOrder(existing) + 1
	switch {
	case req.AfterPhaseID != "":
		if anchor := findPhase(existing, req.AfterPhaseID); anchor != nil {
			newOrder = anchor.SortOrder + 1
			if err := s.shift(ctx, projectID, existing, newOrder, 0, 1); err != nil {
				return nil, err
			}
		}
	case req.BeforePhaseID != "":
		if anchor := findPhase(existing, req.BeforePhaseID); anchor != nil {
			newOrder = anchor.SortOrder
			if err := s.shift(ctx, projectID, existing, newOrder, 0, 1); err != nil {
				return nil, err
			}
		}
	}

	phase := &Phase{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		SortOrder:   newOrder,
		CreatedAt:   time.Now(),
	}
	if err := s.phases.Create(ctx, phase); err != nil {
		return nil, fmt.Errorf("inserting phase into project %s: %w", projectID, err)
	}

	s.logger.Info("phase inserted",
		"project_id", projectID, "phase", phase.Name, "sort_order", newOrder)
	return phase, nil
}

// ReorderResult reports the positions involved in a reorder.
type ReorderResult struct {
	OldOrder int `json:"oldOrder"`
	NewOrder int `json:"newOrder"`
}

// ReorderPhase moves a phase to an explicit position, shifting the phases in
// between by one. Moving to the phase's current position is a no-op.
func (s *Service) ReorderPhase(ctx context.Context, phaseID string, newOrder int) (*ReorderResult, error) {
	if newOrder < 1 {
		return nil, ErrInvalidInput
	}

	phase, err := s.getPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	oldOrder := phase.SortOrder
	if newOrder == oldOrder {
		return &ReorderResult{OldOrder: oldOrder, NewOrder: newOrder}, nil
	}

	lock := s.projectLock(phase.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.phases.ListByProject(ctx, phase.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases for project %s: %w", phase.ProjectID, err)
	}

	if newOrder > oldOrder {
		// Moving down: close the gap above.
		err = s.shift(ctx, phase.ProjectID, existing, oldOrder+1, newOrder, -1)
	} else {
		// Moving up: open a gap below.
		err = s.shift(ctx, phase.ProjectID, existing, newOrder, oldOrder-1, 1)
	}
	if err != nil {
		return nil, err
	}

	if err := s.phases.SetSortOrder(ctx, phaseID, newOrder); err != nil {
		return nil, fmt.Errorf("reordering phase %s: %w", phaseID, err)
	}

	s.logger.Info("phase reordered", "phase_id", phaseID, "old_order", oldOrder, "new_order", newOrder)
	return &ReorderResult{OldOrder: oldOrder, NewOrder: newOrder}, nil
}

// shift moves the sort_order of every phase in [from, to] by delta. A to of
// zero means unbounded. The relative form is a single ranged update; stores
// without relative updates get a per-row pass over the same range.
func (s *Service) shift(ctx context.Context, projectID string, existing []Phase, from, to, delta int) error {
	if s.phases.SupportsRelativeShift() {
		if err := s.phases.ShiftRange(ctx, projectID, from, to, delta); err != nil {
			return fmt.Errorf("shifting phases in project %s: %w", projectID, err)
		}
		return nil
	}

	inRange := make([]Phase, 0, len(existing))
	for _, p := range existing {
		if p.SortOrder >= from && (to == 0 || p.SortOrder <= to) {
			inRange = append(inRange, p)
		}
	}
	// Walk away from the direction of the shift so no two phases hold the
	// same sort_order mid-pass. ListByProject returns ascending order.
	if delta > 0 {
		for i := len(inRange) - 1; i >= 0; i-- {
			if err := s.phases.SetSortOrder(ctx, inRange[i].ID, inRange[i].SortOrder+delta); err != nil {
				return fmt.Errorf("shifting phase %s in project %s: %w", inRange[i].ID, projectID, err)
			}
		}
		return nil
	}
	for _, p := range inRange {
		if err := s.phases.SetSortOrder(ctx, p.ID, p.SortOrder+delta); err != nil {
			return fmt.Errorf("shifting phase %s in project %s: %w", p.ID, projectID, err)
		}
	}
	return nil
}

// AddDependency records a blocking edge between two phases. Duplicate edges
// are not deduplicated here; self-edges are rejected.
func (s *Service) AddDependency(ctx context.Context, phaseID, dependsOnPhaseID, notes string) (*Dependency, error) {
	if phaseID == "" || dependsOnPhaseID == "" {
		return nil, ErrInvalidInput
	}
	if phaseID == dependsOnPhaseID {
		return nil, ErrInvalidInput
	}

	dep := &Dependency{
		PhaseID:          phaseID,
		DependsOnPhaseID: dependsOnPhaseID,
		Type:             DependencyTypeBlocks,
		Notes:            notes,
		CreatedAt:        time.Now(),
	}
	if err := s.deps.Add(ctx, dep); err != nil {
		return nil, fmt.Errorf("adding dependency %s -> %s: %w", phaseID, dependsOnPhaseID, err)
	}

	s.logger.Info("dependency added", "phase_id", phaseID, "depends_on", dependsOnPhaseID)
	return dep, nil
}

// RemoveDependency deletes the exact (phaseID, dependsOnPhaseID) edge.
// Removing an absent edge is a no-op.
func (s *Service) RemoveDependency(ctx context.Context, phaseID, dependsOnPhaseID string) error {
	if phaseID == "" || dependsOnPhaseID == "" {
		return ErrInvalidInput
	}
	if err := s.deps.Remove(ctx, phaseID, dependsOnPhaseID); err != nil {
		return fmt.Errorf("removing dependency %s -> %s: %w", phaseID, dependsOnPhaseID, err)
	}
	s.logger.Info("dependency removed", "phase_id", phaseID, "depends_on", dependsOnPhaseID)
	return nil
}

// MarkForRevisit appends a dated revisit note to the phase's description and
// demotes a completed phase back to in_progress. Other statuses are left
// unchanged.
func (s *Service) MarkForRevisit(ctx context.Context, phaseID, reason string) (*Phase, error) {
	phase, err := s.getPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	phase.Description += fmt.Sprintf("\n\nREVISIT NEEDED (%s): %s",
		time.Now().Format("2006-01-02"), reason)
	if phase.Status == StatusComplete {
		phase.Status = StatusInProgress
	}

	if err := s.phases.Update(ctx, phase); err != nil {
		return nil, fmt.Errorf("marking phase %s for revisit: %w", phaseID, err)
	}

	s.logger.Warn("phase marked for revisit", "phase_id", phaseID, "phase", phase.Name, "reason", reason)
	return phase, nil
}

// UpdatePhaseStatus sets a phase's status, stamping completed_at on complete
// and started_at (if unset) on in_progress.
func (s *Service) UpdatePhaseStatus(ctx context.Context, phaseID string, status PhaseStatus) (*Phase, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidInput
	}

	phase, err := s.getPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	phase.Status = status
	switch status {
	case StatusComplete:
		phase.CompletedAt = &now
	case StatusInProgress:
		if phase.StartedAt == nil {
			phase.StartedAt = &now
		}
	}

	if err := s.phases.Update(ctx, phase); err != nil {
		return nil, fmt.Errorf("updating status of phase %s: %w", phaseID, err)
	}

	s.logger.Info("phase status updated", "phase_id", phaseID, "status", status)
	return phase, nil
}

// TodoSpec carries the TODO fields needed to derive a phase.
type TodoSpec struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// CreatePhaseFromTodo derives a pending phase from a TODO and inserts it
// before the project's first pending phase, or appends when none is pending.
func (s *Service) CreatePhaseFromTodo(ctx context.Context, projectID string, todo TodoSpec) (*Phase, error) {
	if strings.TrimSpace(todo.Title) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases for project %s: %w", projectID, err)
	}

	var beforeID string
	for _, p := range existing {
		if p.Status == StatusPending {
			beforeID = p.ID
			break
		}
	}

	source := todo.Description
	if source == "" {
		source = todo.Title
	}
	priority := todo.Priority
	if priority == "" {
		priority = "normal"
	}

	phase, err := s.InsertPhase(ctx, projectID, InsertRequest{
		Name:          todo.Title,
		Description:   fmt.Sprintf("Auto-created from TODO: %s\n\nPriority: %s", source, priority),
		Status:        StatusPending,
		BeforePhaseID: beforeID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("phase created from TODO", "todo", todo.Title, "phase_id", phase.ID)
	return phase, nil
}

func (s *Service) getPhase(ctx context.Context, phaseID string) (*Phase, error) {
	phase, err := s.phases.Get(ctx, phaseID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrPhaseNotFound
		}
		return nil, fmt.Errorf("getting phase %s: %w", phaseID, err)
	}
	return phase, nil
}

func maxSortOrder(phases []Phase) int {
	maxOrder := 0
	for _, p := range phases {
		if p.SortOrder > maxOrder {
			maxOrder = p.SortOrder
		}
	}
	return maxOrder
}

func findPhase(phases []Phase, id string) *Phase {
	for i := range phases {
		if phases[i].ID == id {
			return &phases[i]
		}
	}
	return nil
}
