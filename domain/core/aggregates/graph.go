package aggregates

import (
	"time"

	"github.com/google/uuid"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
	pkgerrors "insightgraph/pkg/errors"
)

// GraphID represents a unique graph snapshot identifier
type GraphID string

// NewGraphID creates a new random GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// String returns the string representation
func (id GraphID) String() string {
	return string(id)
}

// Graph is the aggregate root for one knowledge-graph snapshot.
// A snapshot is immutable after construction: any change to the node or
// link collections arrives as a brand-new snapshot with a new identity,
// which is what the layout memoization is keyed on. Node order is
// preserved from ingestion because both layout seeding and link-selection
// tie-breaking depend on it.
type Graph struct {
	id        GraphID
	userID    string
	name      string
	nodes     []*entities.GraphNode
	links     []*entities.GraphLink
	byID      map[valueobjects.NodeID]*entities.GraphNode
	createdAt time.Time
}

// ResolvedLink is a link whose endpoints were resolved against the
// snapshot's node set. Links that fail to resolve never become one.
type ResolvedLink struct {
	Source *entities.GraphNode
	Target *entities.GraphNode
	Link   *entities.GraphLink
}

// NewGraph creates a snapshot aggregate, enforcing node-id uniqueness.
// A nil link slice is tolerated and treated as no links; links whose
// endpoints are unknown are kept as-is and dropped later at render time.
func NewGraph(userID, name string, nodes []*entities.GraphNode, links []*entities.GraphLink) (*Graph, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	byID := make(map[valueobjects.NodeID]*entities.GraphNode, len(nodes))
	for _, n := range nodes {
		if _, exists := byID[n.ID()]; exists {
			return nil, pkgerrors.NewValidationError("duplicate node id: " + n.ID().String())
		}
		byID[n.ID()] = n
	}

	if links == nil {
		links = []*entities.GraphLink{}
	}

	return &Graph{
		id:        NewGraphID(),
		userID:    userID,
		name:      name,
		nodes:     nodes,
		links:     links,
		byID:      byID,
		createdAt: time.Now(),
	}, nil
}

// ID returns the snapshot identity
func (g *Graph) ID() GraphID {
	return g.id
}

// UserID returns the owning user
func (g *Graph) UserID() string {
	return g.userID
}

// Name returns the snapshot display name
func (g *Graph) Name() string {
	return g.name
}

// CreatedAt returns the ingestion time
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// Nodes returns the node set in ingestion order.
// Callers must not mutate the returned nodes.
func (g *Graph) Nodes() []*entities.GraphNode {
	return g.nodes
}

// Links returns the raw link set in ingestion order, dangling entries included
func (g *Graph) Links() []*entities.GraphLink {
	return g.links
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// LinkCount returns the number of raw links
func (g *Graph) LinkCount() int {
	return len(g.links)
}

// Node looks up a node by id
func (g *Graph) Node(id valueobjects.NodeID) (*entities.GraphNode, error) {
	n, ok := g.byID[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("node " + id.String())
	}
	return n, nil
}

// HasNode reports whether the id resolves within this snapshot
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, ok := g.byID[id]
	return ok
}

// ResolveLinks returns the links whose endpoints both exist in the node
// set, preserving ingestion order. Dangling links are silently dropped;
// they are a tolerated data condition, not an error.
func (g *Graph) ResolveLinks() []ResolvedLink {
	resolved := make([]ResolvedLink, 0, len(g.links))
	for _, l := range g.links {
		src, ok := g.byID[l.SourceID()]
		if !ok {
			continue
		}
		tgt, ok := g.byID[l.TargetID()]
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedLink{Source: src, Target: tgt, Link: l})
	}
	return resolved
}

// Fingerprint identifies the snapshot's input data for layout memoization.
// Snapshots are immutable, so identity alone is sufficient: a changed node
// or link collection is by construction a new snapshot with a new id.
func (g *Graph) Fingerprint() string {
	return string(g.id)
}

// Stats summarizes the snapshot for the host panel
type Stats struct {
	NodeCount    int     `json:"node_count"`
	LinkCount    int     `json:"link_count"`
	DanglingLink int     `json:"dangling_links"`
	ClusterCount int     `json:"cluster_count"`
	Density      float64 `json:"density"`
}

// ComputeStats derives summary statistics from the snapshot
func (g *Graph) ComputeStats() Stats {
	resolved := g.ResolveLinks()
	stats := Stats{
		NodeCount:    len(g.nodes),
		LinkCount:    len(g.links),
		DanglingLink: len(g.links) - len(resolved),
		ClusterCount: len(g.Clusters()),
	}
	if len(g.nodes) > 1 {
		maxPossible := len(g.nodes) * (len(g.nodes) - 1) / 2
		stats.Density = float64(len(resolved)) / float64(maxPossible)
	}
	return stats
}

// Clusters returns the connected components of the resolved graph
func (g *Graph) Clusters() [][]valueobjects.NodeID {
	adjacency := make(map[valueobjects.NodeID][]valueobjects.NodeID)
	for _, rl := range g.ResolveLinks() {
		adjacency[rl.Source.ID()] = append(adjacency[rl.Source.ID()], rl.Target.ID())
		adjacency[rl.Target.ID()] = append(adjacency[rl.Target.ID()], rl.Source.ID())
	}

	visited := make(map[valueobjects.NodeID]bool, len(g.nodes))
	var clusters [][]valueobjects.NodeID
	for _, n := range g.nodes {
		if visited[n.ID()] {
			continue
		}
		clusters = append(clusters, g.dfs(n.ID(), adjacency, visited))
	}
	return clusters
}

func (g *Graph) dfs(start valueobjects.NodeID, adjacency map[valueobjects.NodeID][]valueobjects.NodeID, visited map[valueobjects.NodeID]bool) []valueobjects.NodeID {
	var component []valueobjects.NodeID
	stack := []valueobjects.NodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		component = append(component, id)
		stack = append(stack, adjacency[id]...)
	}
	return component
}
