package todowatch

import (
	"fmt"
	"strings"
	"time"
)

// Todo is an externally managed work item. A TODO disappears from the source
// collection when resolved; removal is inferred by absence in a later poll.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority,omitempty"`
	ProjectPath string    `json:"project_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusChange pairs the previous and current snapshot of a TODO whose
// status changed between polls.
type StatusChange struct {
	Old Todo `json:"old"`
	New Todo `json:"new"`
}

// RevisitSuggestion flags a completed phase that a new TODO may invalidate.
type RevisitSuggestion struct {
	Phase   string `json:"phase"`
	Project string `json:"project"`
	Todo    string `json:"todo"`
	Reason  string `json:"reason"`
}

// OffTrackWarning flags a new TODO targeting a project other than the
// current focus.
type OffTrackWarning struct {
	Todo         string `json:"todo"`
	TodoProject  string `json:"todoProject"`
	CurrentFocus string `json:"currentFocus"`
	Warning      string `json:"warning"`
}

// Analysis is the classified outcome of one poll cycle.
type Analysis struct {
	NewTodos         []Todo              `json:"newTodos"`
	CompletedTodos   []Todo              `json:"completedTodos"`
	ChangedTodos     []StatusChange      `json:"changedTodos"`
	OffTrackWarnings []OffTrackWarning   `json:"offTrackWarnings"`
	RevisitNeeded    []RevisitSuggestion `json:"revisitNeeded"`
}

// Notable reports whether the cycle found anything worth persisting.
func (a *Analysis) Notable() bool {
	return len(a.NewTodos) > 0 || len(a.RevisitNeeded) > 0 || len(a.OffTrackWarnings) > 0
}

// Summary renders a short human-readable digest of the cycle.
func (a *Analysis) Summary() string {
	var parts []string
	if n := len(a.NewTodos); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new TODOs", n))
	}
	if n := len(a.CompletedTodos); n > 0 {
		parts = append(parts, fmt.Sprintf("%d completed", n))
	}
	if n := len(a.RevisitNeeded); n > 0 {
		parts = append(parts, fmt.Sprintf("%d phases need revisit", n))
	}
	if n := len(a.OffTrackWarnings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d off-track warnings", n))
	}
	if len(parts) == 0 {
		return "No significant changes"
	}
	return strings.Join(parts, ", ")
}
