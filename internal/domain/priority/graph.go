package priority

import (
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// Blocker is an unsatisfied dependency edge seen from the blocked phase.
type Blocker struct {
	Phase *roadmap.Phase
	Notes string
}

// CrossClientBlock identifies a blocking edge whose two phases belong to
// projects owned by different clients.
type CrossClientBlock struct {
	BlockerPhase   string `json:"blocker_phase"`
	BlockerProject string `json:"blocker_project"`
	BlockerClient  string `json:"blocker_client"`
	MyClient       string `json:"my_client"`
	Notes          string `json:"notes,omitempty"`
}

// UnblockTarget is a phase in another client's project that depends on the
// phase holding it.
type UnblockTarget struct {
	PhaseID string `json:"phase_id"`
	Phase   string `json:"phase"`
	Project string `json:"project"`
	Client  string `json:"client"`
}

// Node is one phase enriched with its owning project, client, and blocking
// relationships for a single evaluation pass.
type Node struct {
	Phase   roadmap.Phase
	Project *roadmap.Project
	Client  *roadmap.Client

	BlockedBy           []Blocker
	CrossClientBlock    *CrossClientBlock
	UnblocksCrossClient []UnblockTarget
}

// IsBlocked reports whether the phase has at least one unsatisfied blocker.
func (n *Node) IsBlocked() bool {
	return len(n.BlockedBy) > 0
}

// ClientID returns the owning client id, or "" when the project is unknown.
func (n *Node) ClientID() string {
	if n.Project == nil {
		return ""
	}
	return n.Project.ClientID
}

// ClientName returns the owning client name, or "Unknown".
func (n *Node) ClientName() string {
	if n.Client == nil {
		return "Unknown"
	}
	return n.Client.Name
}

// Graph is the in-memory blocking graph for one evaluation pass. All lookups
// are single-hop, so malformed data (including cycles) cannot cause unbounded
// traversal.
type Graph struct {
	Nodes []*Node
	byID  map[string]*Node
}

// BuildGraph constructs the blocking graph from a snapshot. Edges referencing
// a phase id not present in the snapshot are ignored, and an edge whose
// blocker is complete is treated as satisfied.
func BuildGraph(phases []roadmap.Phase, deps []roadmap.Dependency, projects []roadmap.Project, clients []roadmap.Client) *Graph {
	projectByID := make(map[string]*roadmap.Project, len(projects))
	for i := range projects {
		projectByID[projects[i].ID] = &projects[i]
	}
	clientByID := make(map[string]*roadmap.Client, len(clients))
	for i := range clients {
		clientByID[clients[i].ID] = &clients[i]
	}

	g := &Graph{byID: make(map[string]*Node, len(phases))}
	for i := range phases {
		node := &Node{Phase: phases[i]}
		if proj, ok := projectByID[phases[i].ProjectID]; ok {
			node.Project = proj
			node.Client = clientByID[proj.ClientID]
		}
		g.Nodes = append(g.Nodes, node)
		g.byID[phases[i].ID] = node
	}

	for _, dep := range deps {
		blocked, ok := g.byID[dep.PhaseID]
		if !ok {
			continue
		}
		blocker, ok := g.byID[dep.DependsOnPhaseID]
		if !ok {
			continue
		}

		if blocker.Phase.Status != roadmap.StatusComplete {
			blocked.BlockedBy = append(blocked.BlockedBy, Blocker{Phase: &blocker.Phase, Notes: dep.Notes})
			if blocker.ClientID() != blocked.ClientID() {
				blocked.CrossClientBlock = &CrossClientBlock{
					BlockerPhase:   blocker.Phase.Name,
					BlockerProject: projectName(blocker.Project),
					BlockerClient:  blocker.ClientName(),
					MyClient:       blocked.ClientName(),
					Notes:          dep.Notes,
				}
			}
		}

		if blocker.ClientID() != blocked.ClientID() {
			blocker.UnblocksCrossClient = append(blocker.UnblocksCrossClient, UnblockTarget{
				PhaseID: blocked.Phase.ID,
				Phase:   blocked.Phase.Name,
				Project: projectName(blocked.Project),
				Client:  blocked.ClientName(),
			})
		}
	}

	return g
}

// Get returns the node for a phase id, or nil.
func (g *Graph) Get(phaseID string) *Node {
	return g.byID[phaseID]
}

// SameClientDependents counts phases in the same client's projects whose
// unsatisfied blockers include the given phase.
func (g *Graph) SameClientDependents(phaseID string) int {
	node, ok := g.byID[phaseID]
	if !ok {
		return 0
	}
	count := 0
	for _, other := range g.Nodes {
		if other.ClientID() != node.ClientID() {
			continue
		}
		for _, b := range other.BlockedBy {
			if b.Phase.ID == phaseID {
				count++
				break
			}
		}
	}
	return count
}

// CrossClientBlocked returns the nodes currently blocked across a client
// boundary, in snapshot order.
func (g *Graph) CrossClientBlocked() []*Node {
	var blocked []*Node
	for _, node := range g.Nodes {
		if node.CrossClientBlock != nil {
			blocked = append(blocked, node)
		}
	}
	return blocked
}

func projectName(p *roadmap.Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}
