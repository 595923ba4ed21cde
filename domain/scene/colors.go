package scene

import (
	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
)

// Palette. Sentiment bands are shared between nodes and links so the two
// read consistently in the scene.
const (
	ColorPositive = "#2ecc71"
	ColorNegative = "#e74c3c"
	ColorNeutral  = "#95a5a6"

	ColorPersona = "#8e6fd8"
	ColorConcept = "#4a90e2"
	ColorEmotion = "#f5a623"

	ColorLinkDefault = "#5c6370"

	Background = "#101020"
)

// bandColor maps a sentiment band to its palette entry
func bandColor(band valueobjects.SentimentBand) string {
	switch band {
	case valueobjects.BandPositive:
		return ColorPositive
	case valueobjects.BandNegative:
		return ColorNegative
	default:
		return ColorNeutral
	}
}

// NodeColorRule is one ranked predicate of the node color policy
type NodeColorRule struct {
	Name  string
	When  func(*entities.GraphNode) bool
	Color func(*entities.GraphNode) string
}

// nodeColorRules is the node color policy as an explicit ordered list:
// rules are evaluated top to bottom and the first match wins. Keeping the
// precedence flat makes each rule independently testable.
var nodeColorRules = []NodeColorRule{
	{
		Name: "persona-sentiment",
		When: func(n *entities.GraphNode) bool {
			return n.Type() == entities.TypePersona && n.Sentiment().Present()
		},
		Color: func(n *entities.GraphNode) string {
			return bandColor(n.Sentiment().Band())
		},
	},
	{
		Name: "persona-default",
		When: func(n *entities.GraphNode) bool {
			return n.Type() == entities.TypePersona
		},
		Color: func(*entities.GraphNode) string { return ColorPersona },
	},
	{
		Name: "concept",
		When: func(n *entities.GraphNode) bool {
			return n.Type() == entities.TypeConcept
		},
		Color: func(*entities.GraphNode) string { return ColorConcept },
	},
	{
		Name: "emotion",
		When: func(n *entities.GraphNode) bool {
			return n.Type() == entities.TypeEmotion
		},
		Color: func(*entities.GraphNode) string { return ColorEmotion },
	},
	{
		// Unrecognized types render like personas rather than erroring.
		Name:  "unknown-type",
		When:  func(*entities.GraphNode) bool { return true },
		Color: func(*entities.GraphNode) string { return ColorPersona },
	},
}

// NodeColor resolves the rendered color for a node
func NodeColor(n *entities.GraphNode) string {
	for _, rule := range nodeColorRules {
		if rule.When(n) {
			return rule.Color(n)
		}
	}
	return ColorPersona
}

// LinkColorRule is one ranked predicate of the link color policy
type LinkColorRule struct {
	Name  string
	When  func(*entities.GraphLink) bool
	Color func(*entities.GraphLink) string
}

// linkColorRules: sentiment banding first, then the qualitative type,
// then the neutral default.
var linkColorRules = []LinkColorRule{
	{
		Name: "sentiment",
		When: func(l *entities.GraphLink) bool { return l.Sentiment().Present() },
		Color: func(l *entities.GraphLink) string {
			return bandColor(l.Sentiment().Band())
		},
	},
	{
		Name:  "disagrees",
		When:  func(l *entities.GraphLink) bool { return l.Type() == entities.LinkDisagrees },
		Color: func(*entities.GraphLink) string { return ColorNegative },
	},
	{
		Name:  "agrees",
		When:  func(l *entities.GraphLink) bool { return l.Type() == entities.LinkAgrees },
		Color: func(*entities.GraphLink) string { return ColorPositive },
	},
	{
		Name:  "default",
		When:  func(*entities.GraphLink) bool { return true },
		Color: func(*entities.GraphLink) string { return ColorLinkDefault },
	},
}

// LinkColor resolves the rendered color for a link
func LinkColor(l *entities.GraphLink) string {
	for _, rule := range linkColorRules {
		if rule.When(l) {
			return rule.Color(l)
		}
	}
	return ColorLinkDefault
}
