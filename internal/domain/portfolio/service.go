package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/priority"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// PhaseRepository provides phase reads.
type PhaseRepository interface {
	List(ctx context.Context) ([]roadmap.Phase, error)
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

// TradelineRepository provides tradeline reads.
type TradelineRepository interface {
	List(ctx context.Context) ([]roadmap.Tradeline, error)
}

// FocusRepository reads open focus records.
type FocusRepository interface {
	ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error)
}

// Service assembles the portfolio status snapshot.
type Service struct {
	phases     PhaseRepository
	deps       DependencyRepository
	projects   ProjectRepository
	clients    ClientRepository
	bugs       BugRepository
	tradelines TradelineRepository
	focus      FocusRepository
	logger     *slog.Logger
}

// NewService creates a new portfolio service.
func NewService(
	phases PhaseRepository,
	deps DependencyRepository,
	projects ProjectRepository,
	clients ClientRepository,
	bugs BugRepository,
	tradelines TradelineRepository,
	focus FocusRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		phases:     phases,
		deps:       deps,
		projects:   projects,
		clients:    clients,
		bugs:       bugs,
		tradelines: tradelines,
		focus:      focus,
		logger:     logger,
	}
}

// PhaseView is a phase annotated with its derived blocked flag.
type PhaseView struct {
	roadmap.Phase
	IsBlocked bool `json:"is_blocked"`
}

// ProjectStats summarizes one project's phases and bugs.
type ProjectStats struct {
	TotalPhases  int `json:"total_phases"`
	Completed    int `json:"completed"`
	InProgress   int `json:"in_progress"`
	Blocked      int `json:"blocked"`
	OpenBugs     int `json:"open_bugs"`
	CriticalBugs int `json:"critical_bugs"`
}

// ProjectReport is one project with its phases and stats.
type ProjectReport struct {
	roadmap.Project
	Phases []PhaseView  `json:"phases"`
	Stats  ProjectStats `json:"stats"`
}

// Summary holds portfolio-wide counts.
type Summary struct {
	TotalProjects   int `json:"total_projects"`
	ActiveProjects  int `json:"active_projects"`
	TotalPhases     int `json:"total_phases"`
	CompletedPhases int `json:"completed_phases"`
	BlockedPhases   int `json:"blocked_phases"`
	LiveTradelines  int `json:"live_tradelines"`
}

// Report is the full status snapshot.
type Report struct {
	ClientID     string                `json:"client_id,omitempty"`
	Projects     []ProjectReport       `json:"projects"`
	Tradelines   []roadmap.Tradeline   `json:"tradelines"`
	CurrentFocus []roadmap.FocusRecord `json:"current_focus"`
	Summary      Summary               `json:"summary"`
}

// Report builds the status snapshot for all active projects, optionally
// filtered to one client. Tradelines are shared and never filtered.
func (s *Service) Report(ctx context.Context, clientID string) (*Report, error) {
	projects, err := s.projects.List(ctx, clientID, true)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	allPhases, err := s.phases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	deps, err := s.deps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	bugs, err := s.bugs.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing open bugs: %w", err)
	}
	tradelines, err := s.tradelines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tradelines: %w", err)
	}
	openFocus, err := s.focus.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing focus records: %w", err)
	}

	allProjects, err := s.projects.List(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("listing all projects: %w", err)
	}
	graph := priority.BuildGraph(allPhases, deps, allProjects, clients)

	inScope := make(map[string]bool, len(projects))
	for _, p := range projects {
		inScope[p.ID] = true
	}

	report := &Report{
		ClientID:     clientID,
		Projects:     []ProjectReport{},
		Tradelines:   tradelines,
		CurrentFocus: []roadmap.FocusRecord{},
		Summary:      Summary{TotalProjects: len(projects)},
	}

	for _, focus := range openFocus {
		if inScope[focus.ProjectID] {
			report.CurrentFocus = append(report.CurrentFocus, focus)
		}
	}

	for _, project := range projects {
		pr := ProjectReport{Project: project, Phases: []PhaseView{}}
		for _, node := range graph.Nodes {
			if node.Phase.ProjectID != project.ID {
				continue
			}
			blocked := node.IsBlocked()
			pr.Phases = append(pr.Phases, PhaseView{Phase: node.Phase, IsBlocked: blocked})

			pr.Stats.TotalPhases++
			report.Summary.TotalPhases++
			if blocked {
				pr.Stats.Blocked++
				report.Summary.BlockedPhases++
			}
			switch node.Phase.Status {
			case roadmap.StatusComplete:
				pr.Stats.Completed++
				report.Summary.CompletedPhases++
			case roadmap.StatusInProgress:
				pr.Stats.InProgress++
			}
		}

		for _, bug := range bugs {
			if bug.ProjectPath != "" && strings.Contains(bug.ProjectPath, project.Slug) {
				pr.Stats.OpenBugs++
				if bug.Severity == roadmap.BugSeverityCritical {
					pr.Stats.CriticalBugs++
				}
			}
		}

		if pr.Stats.InProgress > 0 {
			report.Summary.ActiveProjects++
		}
		report.Projects = append(report.Projects, pr)
	}

	for _, tl := range tradelines {
		if tl.Status == "live" {
			report.Summary.LiveTradelines++
		}
	}

	return report, nil
}
