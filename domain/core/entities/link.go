package entities

import (
	"insightgraph/domain/core/valueobjects"
	pkgerrors "insightgraph/pkg/errors"
)

// LinkType is the optional qualitative label on a relationship
type LinkType string

const (
	LinkAgrees    LinkType = "agrees"
	LinkDisagrees LinkType = "disagrees"
)

// GraphLink is a directed, weighted relationship between two nodes.
// Endpoints are held by identity only; whether they resolve against the
// snapshot's node set is decided where the link is consumed. A link whose
// endpoint is unknown is skipped there, never treated as fatal.
type GraphLink struct {
	sourceID valueobjects.NodeID
	targetID valueobjects.NodeID
	linkType LinkType

	sentiment valueobjects.Sentiment

	// strength and value both express selection importance; strength wins
	// when both are present. Neither feeds the physical force magnitude.
	strength    float64
	hasStrength bool
	value       float64
	hasValue    bool
}

// NewGraphLink creates a link between two node identities
func NewGraphLink(sourceID, targetID string) (*GraphLink, error) {
	src, err := valueobjects.NewNodeID(sourceID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("link source: " + err.Error())
	}
	tgt, err := valueobjects.NewNodeID(targetID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("link target: " + err.Error())
	}
	return &GraphLink{sourceID: src, targetID: tgt}, nil
}

// SourceID returns the source node identity
func (l *GraphLink) SourceID() valueobjects.NodeID {
	return l.sourceID
}

// TargetID returns the target node identity
func (l *GraphLink) TargetID() valueobjects.NodeID {
	return l.targetID
}

// SetType attaches the qualitative label
func (l *GraphLink) SetType(t LinkType) {
	l.linkType = t
}

// Type returns the qualitative label, empty when unset
func (l *GraphLink) Type() LinkType {
	return l.linkType
}

// SetSentiment attaches a sentiment score
func (l *GraphLink) SetSentiment(s valueobjects.Sentiment) {
	l.sentiment = s
}

// Sentiment returns the link's sentiment score, which may be absent
func (l *GraphLink) Sentiment() valueobjects.Sentiment {
	return l.sentiment
}

// SetStrength records the primary selection weight
func (l *GraphLink) SetStrength(v float64) {
	l.strength = v
	l.hasStrength = true
}

// SetValue records the secondary selection weight
func (l *GraphLink) SetValue(v float64) {
	l.value = v
	l.hasValue = true
}

// Weight is the selection importance: strength, falling back to value,
// falling back to zero.
func (l *GraphLink) Weight() float64 {
	if l.hasStrength {
		return l.strength
	}
	if l.hasValue {
		return l.value
	}
	return 0
}
