package entities

import (
	"insightgraph/domain/core/valueobjects"
	pkgerrors "insightgraph/pkg/errors"
)

// NodeType classifies what a graph node represents in the focus-group
// analysis: a participant persona, an extracted concept, or an emotion.
type NodeType string

const (
	TypePersona NodeType = "persona"
	TypeConcept NodeType = "concept"
	TypeEmotion NodeType = "emotion"
)

// IsKnown reports whether the type is one of the recognized kinds.
// Unknown types are tolerated; styling falls back to the persona color.
func (t NodeType) IsKnown() bool {
	switch t {
	case TypePersona, TypeConcept, TypeEmotion:
		return true
	}
	return false
}

// DefaultNodeSize is the rendered radius used when a node carries no size
const DefaultNodeSize = 5.0

// labelFallbackLen bounds the truncated-id label when a node has no name
const labelFallbackLen = 10

// GraphNode is a vertex of a knowledge-graph snapshot.
// Type is immutable once created. Nodes carry no coordinates; the layout
// engine keeps positions in its own working set and never writes back.
type GraphNode struct {
	id        valueobjects.NodeID
	nodeType  NodeType
	name      string
	sentiment valueobjects.Sentiment
	size      float64
	hasSize   bool
}

// NewGraphNode creates a node with its immutable identity and type
func NewGraphNode(id string, nodeType NodeType, name string) (*GraphNode, error) {
	nodeID, err := valueobjects.NewNodeID(id)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return &GraphNode{
		id:       nodeID,
		nodeType: nodeType,
		name:     name,
	}, nil
}

// ID returns the node identity
func (n *GraphNode) ID() valueobjects.NodeID {
	return n.id
}

// Type returns the node kind
func (n *GraphNode) Type() NodeType {
	return n.nodeType
}

// Name returns the raw display name, which may be empty
func (n *GraphNode) Name() string {
	return n.name
}

// Label returns the display text, falling back to a truncated id when
// the analytics service supplied no name.
func (n *GraphNode) Label() string {
	if n.name != "" {
		return n.name
	}
	return n.id.Truncated(labelFallbackLen)
}

// SetSentiment attaches a sentiment score to the node
func (n *GraphNode) SetSentiment(s valueobjects.Sentiment) {
	n.sentiment = s
}

// Sentiment returns the node's sentiment score, which may be absent
func (n *GraphNode) Sentiment() valueobjects.Sentiment {
	return n.sentiment
}

// SetSize overrides the rendered radius
func (n *GraphNode) SetSize(size float64) error {
	if size <= 0 {
		return pkgerrors.NewValidationError("node size must be positive")
	}
	n.size = size
	n.hasSize = true
	return nil
}

// Size returns the rendered radius, defaulting when none was supplied
func (n *GraphNode) Size() float64 {
	if !n.hasSize {
		return DefaultNodeSize
	}
	return n.size
}

// HasSize reports whether an explicit size was supplied
func (n *GraphNode) HasSize() bool {
	return n.hasSize
}
