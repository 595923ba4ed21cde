// Package layout computes static force-directed positions for a graph
// snapshot. The solver is planar: nodes settle on the XY plane and Z is
// carried as a constant zero for the 3D scene. A run is pure with respect
// to its inputs — the engine works on private clones and never mutates
// ingested nodes — and deterministic for a given snapshot, which is what
// makes result memoization safe.
package layout

import (
	"math"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
)

// Params tunes the force simulation
type Params struct {
	// LinkDistance is the rest length every spring pulls toward.
	LinkDistance float64
	// LinkStrength moderates the spring coefficient. Kept well below 1 so
	// tightly connected clusters do not collapse into rigid clumps.
	LinkStrength float64
	// ChargeStrength is the uniform many-body charge. Negative repels.
	// Tuned weaker than the usual default so large graphs stay compact.
	ChargeStrength float64
	// CollisionRadius is the minimum separation enforced between any two
	// node centers, independent of link topology.
	CollisionRadius float64
	// Iterations is the fixed tick budget. The simulation is not
	// event-driven; it runs to completion in one synchronous pass.
	Iterations int
	// VelocityDecay is the per-tick friction applied to velocities.
	VelocityDecay float64
}

// DefaultParams returns the tuning used by the visualization service
func DefaultParams() Params {
	return Params{
		LinkDistance:    60,
		LinkStrength:    0.3,
		ChargeStrength:  -40,
		CollisionRadius: 14,
		Iterations:      300,
		VelocityDecay:   0.4,
	}
}

// PositionedNode pairs an ingested node with its final coordinates.
// Node is a read-only reference into the snapshot.
type PositionedNode struct {
	Node *entities.GraphNode
	X    float64
	Y    float64
	Z    float64
}

// Engine runs the force simulation
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given tuning
func NewEngine(params Params) *Engine {
	if params.Iterations <= 0 {
		params.Iterations = DefaultParams().Iterations
	}
	return &Engine{params: params}
}

// simNode is the private mutable working set entry for one node
type simNode struct {
	node   *entities.GraphNode
	x, y   float64
	vx, vy float64
}

// spring is a resolved link expressed as working-set indices
type spring struct {
	source, target int
}

const (
	alphaMin = 0.001

	// phyllotaxis seeding constants, giving a deterministic spiral
	// initial placement with no two nodes coincident
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Run computes one position per node. Linked nodes are pulled toward the
// rest distance, all nodes mutually repel, the whole graph is re-centered
// at the origin, and a minimum collision radius is enforced. An empty
// node set yields an empty result; a nil or unresolvable link set is
// treated as no links. The caller's nodes are never mutated.
func (e *Engine) Run(nodes []*entities.GraphNode, links []*entities.GraphLink) []PositionedNode {
	if len(nodes) == 0 {
		return []PositionedNode{}
	}

	sim := make([]*simNode, len(nodes))
	index := make(map[valueobjects.NodeID]int, len(nodes))
	for i, n := range nodes {
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		sim[i] = &simNode{
			node: n,
			x:    radius * math.Cos(angle),
			y:    radius * math.Sin(angle),
		}
		index[n.ID()] = i
	}

	springs := e.resolveSprings(links, index)

	// Alpha cools geometrically so the fixed tick budget lands at alphaMin,
	// by which point positions are visually stable.
	alpha := 1.0
	decay := 1 - math.Pow(alphaMin, 1/float64(e.params.Iterations))

	for tick := 0; tick < e.params.Iterations && alpha >= alphaMin; tick++ {
		applyLinkForce(sim, springs, e.params, alpha)
		applyChargeForce(sim, e.params, alpha)

		friction := 1 - e.params.VelocityDecay
		for _, s := range sim {
			s.vx *= friction
			s.vy *= friction
			s.x += s.vx
			s.y += s.vy
		}

		applyCollisionForce(sim, e.params)
		applyCenterForce(sim)

		alpha += (0 - alpha) * decay
	}

	out := make([]PositionedNode, len(sim))
	for i, s := range sim {
		out[i] = PositionedNode{Node: s.node, X: s.x, Y: s.y, Z: 0}
	}
	return out
}

// resolveSprings maps links onto working-set indices, dropping entries
// whose endpoints do not exist in the node set.
func (e *Engine) resolveSprings(links []*entities.GraphLink, index map[valueobjects.NodeID]int) []spring {
	if len(links) == 0 {
		return nil
	}
	springs := make([]spring, 0, len(links))
	for _, l := range links {
		if l == nil {
			continue
		}
		si, ok := index[l.SourceID()]
		if !ok {
			continue
		}
		ti, ok := index[l.TargetID()]
		if !ok || si == ti {
			continue
		}
		springs = append(springs, spring{source: si, target: ti})
	}
	return springs
}

// jiggle returns a tiny deterministic offset used to separate coincident
// points without introducing randomness into the layout.
func jiggle(i int) float64 {
	return 1e-6 * float64(i%13+1)
}
