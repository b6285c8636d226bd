package priority

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository"
	"github.com/google/uuid"
)

// Scoring weights. The cross-client unblock bonus dominates so that freeing
// another client's work always outranks continuing local work.
const (
	scoreCrossClientUnblock  = 200
	scoreInProgress          = 100
	scoreSameClientDependent = 20
	scoreToolingProject      = 50
	sortOrderBonusCeiling    = 10
)

const maxAlternatives = 3

// blockedWarningRows caps the example rows in the cross-client warning.
const blockedWarningRows = 5

// Service selects the next phase to work on. Every evaluation reads a fresh
// snapshot from the store; nothing is cached between calls.
type Service struct {
	phases      PhaseRepository
	deps        DependencyRepository
	projects    ProjectRepository
	clients     ClientRepository
	bugs        BugRepository
	focus       FocusRepository
	toolingSlug string
	logger      *slog.Logger
}

// NewService creates a new priority service. toolingSlug names the project
// that receives the fixed tooling bonus; empty disables it.
func NewService(
	phases PhaseRepository,
	deps DependencyRepository,
	projects ProjectRepository,
	clients ClientRepository,
	bugs BugRepository,
	focus FocusRepository,
	toolingSlug string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		phases:      phases,
		deps:        deps,
		projects:    projects,
		clients:     clients,
		bugs:        bugs,
		focus:       focus,
		toolingSlug: toolingSlug,
		logger:      logger,
	}
}

// Recommendation is the single "do this next" pick.
type Recommendation struct {
	Project         string              `json:"project"`
	ProjectSlug     string              `json:"project_slug"`
	Client          string              `json:"client"`
	Phase           string              `json:"phase"`
	PhaseID         string              `json:"phase_id"`
	Status          roadmap.PhaseStatus `json:"status"`
	Score           int                 `json:"score"`
	Reasons         []string            `json:"reasons"`
	Description     string              `json:"description,omitempty"`
	UnblocksClients []UnblockTarget     `json:"unblocks_clients"`
}

// Alternative is a ranked runner-up.
type Alternative struct {
	Project string   `json:"project"`
	Client  string   `json:"client"`
	Phase   string   `json:"phase"`
	PhaseID string   `json:"phase_id"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// WarningItem is one example row inside a warning.
type WarningItem struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Blocked   string `json:"blocked,omitempty"`
	WaitingOn string `json:"waiting_on,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Warning flags a condition computed independently of scoring.
type Warning struct {
	Type    string        `json:"type"`
	Message string        `json:"message"`
	Items   []WarningItem `json:"items"`
}

// Summary holds portfolio-wide counts for one evaluation.
type Summary struct {
	TotalPhases        int `json:"total_phases"`
	Actionable         int `json:"actionable"`
	Blocked            int `json:"blocked"`
	CrossClientBlocked int `json:"cross_client_blocked"`
	InProgress         int `json:"in_progress"`
	Complete           int `json:"complete"`
}

// Result is the full output of one priority evaluation.
type Result struct {
	ActionMessage           *string              `json:"action_message"`
	Recommendation          *Recommendation      `json:"recommendation"`
	Alternatives            []Alternative        `json:"alternatives"`
	CurrentFocus            *roadmap.FocusRecord `json:"current_focus"`
	Warnings                []Warning            `json:"warnings"`
	CrossClientDependencies int                  `json:"cross_client_dependencies"`
	Summary                 Summary              `json:"summary"`
}

type scoredNode struct {
	node    *Node
	score   int
	reasons []string
}

// WhatsNext scores the actionable phases and returns a recommendation with
// ranked alternates and warnings. Read-only: the store is not mutated.
func (s *Service) WhatsNext(ctx context.Context) (*Result, error) {
	phases, err := s.phases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	deps, err := s.deps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	projects, err := s.projects.List(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	bugs, err := s.bugs.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing open bugs: %w", err)
	}
	openFocus, err := s.focus.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing focus records: %w", err)
	}

	graph := BuildGraph(phases, deps, projects, clients)

	scored := s.score(graph)
	// Stable sort: ties keep snapshot order, so equal-score ranking follows
	// the order the store returned the phases in.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	result := &Result{
		Alternatives: []Alternative{},
		Warnings:     []Warning{},
		Summary:      summarize(graph, len(scored)),
	}

	crossBlocked := graph.CrossClientBlocked()
	result.CrossClientDependencies = len(crossBlocked)
	result.Summary.CrossClientBlocked = len(crossBlocked)

	if len(openFocus) > 0 {
		result.CurrentFocus = &openFocus[0]
	}

	if len(scored) > 0 {
		top := scored[0]
		result.Recommendation = &Recommendation{
			Project:         projectName(top.node.Project),
			ProjectSlug:     projectSlug(top.node.Project),
			Client:          top.node.ClientName(),
			Phase:           top.node.Phase.Name,
			PhaseID:         top.node.Phase.ID,
			Status:          top.node.Phase.Status,
			Score:           top.score,
			Reasons:         top.reasons,
			Description:     top.node.Phase.Description,
			UnblocksClients: top.node.UnblocksCrossClient,
		}

		for _, alt := range scored[1:] {
			if len(result.Alternatives) == maxAlternatives {
				break
			}
			result.Alternatives = append(result.Alternatives, Alternative{
				Project: projectName(alt.node.Project),
				Client:  alt.node.ClientName(),
				Phase:   alt.node.Phase.Name,
				PhaseID: alt.node.Phase.ID,
				Score:   alt.score,
				Reasons: alt.reasons,
			})
		}

		// The action message names the first known unblock, as a hint only;
		// it is not necessarily the most valuable one.
		if len(top.node.UnblocksCrossClient) > 0 {
			unblocked := top.node.UnblocksCrossClient[0]
			msg := fmt.Sprintf("Complete %q (%s), then work on %q (%s)",
				top.node.Phase.Name, top.node.ClientName(), unblocked.Phase, unblocked.Client)
			result.ActionMessage = &msg
		}
	}

	result.Warnings = s.buildWarnings(bugs, crossBlocked)

	return result, nil
}

func (s *Service) score(graph *Graph) []scoredNode {
	var scored []scoredNode
	for _, node := range graph.Nodes {
		if node.IsBlocked() {
			continue
		}
		if node.Phase.Status != roadmap.StatusPending && node.Phase.Status != roadmap.StatusInProgress {
			continue
		}

		score := 0
		var reasons []string

		if len(node.UnblocksCrossClient) > 0 {
			score += scoreCrossClientUnblock
			reasons = append(reasons, fmt.Sprintf("Unblocks %s work",
				strings.Join(uniqueClients(node.UnblocksCrossClient), ", ")))
		}

		if node.Phase.Status == roadmap.StatusInProgress {
			score += scoreInProgress
			reasons = append(reasons, "Already in progress")
		}

		if dependents := graph.SameClientDependents(node.Phase.ID); dependents > 0 {
			score += dependents * scoreSameClientDependent
			reasons = append(reasons, fmt.Sprintf("Unblocks %d phase(s)", dependents))
		}

		if s.toolingSlug != "" && node.Project != nil && node.Project.Slug == s.toolingSlug {
			score += scoreToolingProject
			reasons = append(reasons, "Studio tool needed")
		}

		if bonus := sortOrderBonusCeiling - node.Phase.SortOrder; bonus > 0 {
			score += bonus
		}

		scored = append(scored, scoredNode{node: node, score: score, reasons: reasons})
	}
	return scored
}

func (s *Service) buildWarnings(bugs []roadmap.Bug, crossBlocked []*Node) []Warning {
	warnings := []Warning{}

	var critical []roadmap.Bug
	for _, bug := range bugs {
		if bug.Severity == roadmap.BugSeverityCritical {
			critical = append(critical, bug)
		}
	}
	if len(critical) > 0 {
		warning := Warning{
			Type:    "critical_bugs",
			Message: fmt.Sprintf("%d critical bug(s) need attention", len(critical)),
		}
		for _, bug := range critical {
			warning.Items = append(warning.Items, WarningItem{ID: bug.ID, Title: bug.Title})
		}
		warnings = append(warnings, warning)
	}

	if len(crossBlocked) > 0 {
		warning := Warning{
			Type:    "cross_client_blocked",
			Message: fmt.Sprintf("%d phase(s) waiting on another client's tools", len(crossBlocked)),
		}
		for _, node := range crossBlocked {
			if len(warning.Items) == blockedWarningRows {
				break
			}
			warning.Items = append(warning.Items, WarningItem{
				Blocked:   fmt.Sprintf("%s: %s", node.ClientName(), node.Phase.Name),
				WaitingOn: fmt.Sprintf("%s: %s", node.CrossClientBlock.BlockerClient, node.CrossClientBlock.BlockerPhase),
				Reason:    node.CrossClientBlock.Notes,
			})
		}
		warnings = append(warnings, warning)
	}

	return warnings
}

// Complete closes any open focus record referencing the phase and marks the
// phase complete. A missing phase is tolerated: the focus close still runs
// and the status write is skipped.
func (s *Service) Complete(ctx context.Context, phaseID string) error {
	if phaseID == "" {
		return nil
	}

	now := time.Now()
	if err := s.focus.CloseForPhase(ctx, phaseID, now); err != nil {
		return fmt.Errorf("closing focus for phase %s: %w", phaseID, err)
	}

	phase, err := s.phases.Get(ctx, phaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("complete requested for unknown phase", "phase_id", phaseID)
			return nil
		}
		return fmt.Errorf("getting phase %s: %w", phaseID, err)
	}

	phase.Status = roadmap.StatusComplete
	phase.CompletedAt = &now
	if err := s.phases.Update(ctx, phase); err != nil {
		return fmt.Errorf("completing phase %s: %w", phaseID, err)
	}

	s.logger.Info("phase completed", "phase_id", phaseID, "phase", phase.Name)
	return nil
}

// SetFocus transitions the phase to in_progress and opens a new focus record.
// A previously open focus record is left open.
func (s *Service) SetFocus(ctx context.Context, phaseID, rationale string) (*roadmap.FocusRecord, *roadmap.Phase, error) {
	phase, err := s.phases.Get(ctx, phaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, roadmap.ErrPhaseNotFound
		}
		return nil, nil, fmt.Errorf("getting phase %s: %w", phaseID, err)
	}

	now := time.Now()
	phase.Status = roadmap.StatusInProgress
	if phase.StartedAt == nil {
		phase.StartedAt = &now
	}
	if err := s.phases.Update(ctx, phase); err != nil {
		return nil, nil, fmt.Errorf("starting phase %s: %w", phaseID, err)
	}

	if rationale == "" {
		rationale = fmt.Sprintf("Focus on %s", phase.Name)
	}
	focus := &roadmap.FocusRecord{
		ID:        uuid.NewString(),
		ProjectID: phase.ProjectID,
		PhaseID:   phase.ID,
		Priority:  1,
		Rationale: rationale,
		SetBy:     "user",
		CreatedAt: now,
	}
	if err := s.focus.Create(ctx, focus); err != nil {
		return nil, nil, fmt.Errorf("creating focus record for phase %s: %w", phaseID, err)
	}

	s.logger.Info("focus set", "phase_id", phaseID, "phase", phase.Name)
	return focus, phase, nil
}

func summarize(graph *Graph, actionable int) Summary {
	summary := Summary{
		TotalPhases: len(graph.Nodes),
		Actionable:  actionable,
	}
	for _, node := range graph.Nodes {
		if node.IsBlocked() {
			summary.Blocked++
		}
		switch node.Phase.Status {
		case roadmap.StatusInProgress:
			summary.InProgress++
		case roadmap.StatusComplete:
			summary.Complete++
		}
	}
	return summary
}

func uniqueClients(targets []UnblockTarget) []string {
	seen := make(map[string]bool, len(targets))
	var names []string
	for _, t := range targets {
		if !seen[t.Client] {
			seen[t.Client] = true
			names = append(names, t.Client)
		}
	}
	return names
}

func projectSlug(p *roadmap.Project) string {
	if p == nil {
		return ""
	}
	return p.Slug
}
