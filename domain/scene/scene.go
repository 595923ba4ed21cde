// Package scene turns a laid-out graph into a renderable 3D scene
// description: spheres, straight link segments, labels, camera and
// lighting. The document is consumed by the host panel's WebGL view; the
// 2D exporters render the same document when WebGL is unavailable.
package scene

import (
	"math"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
	"insightgraph/domain/layout"
	pkgerrors "insightgraph/pkg/errors"
)

// DefaultLabelThreshold is the node size above which a label is always
// shown. Everything below only reveals its label on hover, which keeps
// dense graphs readable.
const DefaultLabelThreshold = 10.0

// Camera configures the orbiting view
type Camera struct {
	OrbitControls bool    `json:"orbit_controls"`
	DampingFactor float64 `json:"damping_factor"`
	MinDistance   float64 `json:"min_distance"`
	MaxDistance   float64 `json:"max_distance"`
}

// Light is one scene light source
type Light struct {
	Kind      string     `json:"kind"` // "ambient" or "point"
	Intensity float64    `json:"intensity"`
	Position  *[3]float64 `json:"position,omitempty"`
}

// Label is the text shown above a node
type Label struct {
	Text string `json:"text"`
	// Always marks labels visible without hover; hover visibility itself
	// is client-side presentation state.
	Always bool `json:"always"`
}

// Sphere is one rendered node
type Sphere struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Label  Label   `json:"label"`
}

// Segment is one rendered link, a straight line between resolved endpoints
type Segment struct {
	SourceID string     `json:"source_id"`
	TargetID string     `json:"target_id"`
	From     [3]float64 `json:"from"`
	To       [3]float64 `json:"to"`
	Color    string     `json:"color"`
}

// Scene is the complete renderable document
type Scene struct {
	Background string    `json:"background"`
	Camera     Camera    `json:"camera"`
	Lights     []Light   `json:"lights"`
	Nodes      []Sphere  `json:"nodes"`
	Links      []Segment `json:"links"`
	Empty      bool      `json:"empty"`
	Message    string    `json:"message,omitempty"`
}

// Builder constructs scenes from layout output
type Builder struct {
	linkCap        int
	labelThreshold float64
}

// NewBuilder creates a scene builder. Zero arguments select the defaults.
func NewBuilder(linkCap int, labelThreshold float64) *Builder {
	if linkCap <= 0 {
		linkCap = DefaultLinkCap
	}
	if labelThreshold <= 0 {
		labelThreshold = DefaultLabelThreshold
	}
	return &Builder{linkCap: linkCap, labelThreshold: labelThreshold}
}

// WithLinkCap returns a builder with a different rendering cap and the
// same label threshold. Non-positive caps keep the receiver unchanged.
func (b *Builder) WithLinkCap(cap int) *Builder {
	if cap <= 0 {
		return b
	}
	return &Builder{linkCap: cap, labelThreshold: b.labelThreshold}
}

// furniture returns the fixed camera and lighting every scene carries
func furniture() (Camera, []Light) {
	camera := Camera{
		OrbitControls: true,
		DampingFactor: 0.05,
		MinDistance:   40,
		MaxDistance:   900,
	}
	lights := []Light{
		{Kind: "ambient", Intensity: 0.6},
		{Kind: "point", Intensity: 1.0, Position: &[3]float64{100, 100, 100}},
	}
	return camera, lights
}

// EmptyScene is the explicit "no data" state rendered when a snapshot has
// no nodes. It is a valid scene, not an error.
func EmptyScene() *Scene {
	camera, lights := furniture()
	return &Scene{
		Background: Background,
		Camera:     camera,
		Lights:     lights,
		Nodes:      []Sphere{},
		Links:      []Segment{},
		Empty:      true,
		Message:    "no graph data to display",
	}
}

// Build assembles the scene from laid-out nodes and the raw link set.
// Link selection happens here, after layout: the physics ran over every
// link, only rendering is bounded. Links whose endpoints are not in the
// laid-out set are skipped. Construction is fallible but never panics; a
// returned error is a RenderError the HTTP layer converts into a
// degraded textual state.
func (b *Builder) Build(positioned []layout.PositionedNode, links []*entities.GraphLink) (*Scene, error) {
	if len(positioned) == 0 {
		return EmptyScene(), nil
	}

	camera, lights := furniture()
	sc := &Scene{
		Background: Background,
		Camera:     camera,
		Lights:     lights,
		Nodes:      make([]Sphere, 0, len(positioned)),
		Links:      make([]Segment, 0),
	}

	index := make(map[valueobjects.NodeID]layout.PositionedNode, len(positioned))
	for _, pn := range positioned {
		if !isFinite(pn.X) || !isFinite(pn.Y) || !isFinite(pn.Z) {
			return nil, pkgerrors.NewRenderError("layout produced a non-finite coordinate for node " + pn.Node.ID().String())
		}
		index[pn.Node.ID()] = pn

		node := pn.Node
		sc.Nodes = append(sc.Nodes, Sphere{
			ID:     node.ID().String(),
			Type:   string(node.Type()),
			X:      pn.X,
			Y:      pn.Y,
			Z:      pn.Z,
			Radius: node.Size(),
			Color:  NodeColor(node),
			Label: Label{
				Text:   node.Label(),
				Always: node.Size() > b.labelThreshold,
			},
		})
	}

	for _, l := range SelectLinks(links, b.linkCap) {
		if l == nil {
			continue
		}
		src, ok := index[l.SourceID()]
		if !ok {
			continue
		}
		tgt, ok := index[l.TargetID()]
		if !ok {
			continue
		}
		sc.Links = append(sc.Links, Segment{
			SourceID: l.SourceID().String(),
			TargetID: l.TargetID().String(),
			From:     [3]float64{src.X, src.Y, src.Z},
			To:       [3]float64{tgt.X, tgt.Y, tgt.Z},
			Color:    LinkColor(l),
		})
	}

	return sc, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
