package scene

import (
	"testing"

	"github.com/stretchr/testify/require"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
)

func personaWithSentiment(t *testing.T, score float64) *entities.GraphNode {
	t.Helper()
	n, err := entities.NewGraphNode("p1", entities.TypePersona, "Persona One")
	require.NoError(t, err)
	s, err := valueobjects.NewSentiment(score)
	require.NoError(t, err)
	n.SetSentiment(s)
	return n
}

func TestNodeColorPersonaSentimentBands(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"strongly positive", 0.8, ColorPositive},
		{"just above positive threshold", 0.51, ColorPositive},
		{"at positive threshold stays neutral", 0.5, ColorNeutral},
		{"mildly negative stays neutral", -0.3, ColorNeutral},
		{"below negative threshold", -0.5, ColorNegative},
		{"zero", 0, ColorNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NodeColor(personaWithSentiment(t, tt.score)))
		})
	}
}

func TestNodeColorPersonaWithoutSentiment(t *testing.T) {
	n, err := entities.NewGraphNode("p2", entities.TypePersona, "")
	require.NoError(t, err)

	require.Equal(t, ColorPersona, NodeColor(n))
}

func TestNodeColorPerTypePalette(t *testing.T) {
	concept, err := entities.NewGraphNode("c1", entities.TypeConcept, "")
	require.NoError(t, err)
	emotion, err := entities.NewGraphNode("e1", entities.TypeEmotion, "")
	require.NoError(t, err)

	require.Equal(t, ColorConcept, NodeColor(concept))
	require.Equal(t, ColorEmotion, NodeColor(emotion))
}

func TestNodeColorUnknownTypeFallsBackToPersona(t *testing.T) {
	n, err := entities.NewGraphNode("x1", entities.NodeType("theme"), "")
	require.NoError(t, err)

	require.Equal(t, ColorPersona, NodeColor(n))
}

func TestNodeColorSentimentIgnoredForNonPersona(t *testing.T) {
	n, err := entities.NewGraphNode("c2", entities.TypeConcept, "")
	require.NoError(t, err)
	s, err := valueobjects.NewSentiment(0.9)
	require.NoError(t, err)
	n.SetSentiment(s)

	require.Equal(t, ColorConcept, NodeColor(n))
}

func TestLinkColorPrecedence(t *testing.T) {
	withSentiment, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)
	s, err := valueobjects.NewSentiment(-0.6)
	require.NoError(t, err)
	withSentiment.SetSentiment(s)
	withSentiment.SetType(entities.LinkAgrees) // sentiment outranks type

	disagrees, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)
	disagrees.SetType(entities.LinkDisagrees)

	agrees, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)
	agrees.SetType(entities.LinkAgrees)

	plain, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)

	require.Equal(t, ColorNegative, LinkColor(withSentiment))
	require.Equal(t, ColorNegative, LinkColor(disagrees))
	require.Equal(t, ColorPositive, LinkColor(agrees))
	require.Equal(t, ColorLinkDefault, LinkColor(plain))
}
