package roadmap

import "time"

// PhaseStatus is the lifecycle state of a phase.
type PhaseStatus string

const (
	StatusPending    PhaseStatus = "pending"
	StatusInProgress PhaseStatus = "in_progress"
	StatusComplete   PhaseStatus = "complete"
)

// ValidStatus reports whether s is a known phase status.
func ValidStatus(s PhaseStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Client owns zero or more projects.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is a client-owned container for an ordered sequence of phases.
type Project struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	ServerPath string    `json:"server_path,omitempty"`
	SortOrder  int       `json:"sort_order"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Phase is an ordered unit of work within a project's roadmap.
// Within one project, sort_order values form a dense 1-based sequence.
type Phase struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      PhaseStatus `json:"status"`
	SortOrder   int         `json:"sort_order"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Dependency is a directed "must complete before" edge between two phases:
// PhaseID cannot be worked until DependsOnPhaseID is complete.
type Dependency struct {
	PhaseID          string    `json:"phase_id"`
	DependsOnPhaseID string    `json:"depends_on_phase_id"`
	Type             string    `json:"dependency_type"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// DependencyTypeBlocks is the only edge type currently in use.
const DependencyTypeBlocks = "blocks"

// FocusRecord declares a phase as actively being worked on.
// A record is open while CompletedAt is nil.
type FocusRecord struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	PhaseID     string     `json:"phase_id"`
	Priority    int        `json:"priority"`
	Rationale   string     `json:"rationale,omitempty"`
	SetBy       string     `json:"set_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Bug is a read-only input to scoring and warnings.
type Bug struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	ProjectPath string    `json:"project_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BugSeverityCritical marks bugs surfaced as warnings by the priority engine.
const BugSeverityCritical = "critical"

// Tradeline is a shared business line reported by the status snapshot.
type Tradeline struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
