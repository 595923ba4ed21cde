package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightgraph/domain/core/entities"
)

func weightedLink(t *testing.T, i int, strength float64) *entities.GraphLink {
	t.Helper()
	l, err := entities.NewGraphLink(fmt.Sprintf("s%d", i), fmt.Sprintf("t%d", i))
	require.NoError(t, err)
	l.SetStrength(strength)
	return l
}

func TestSelectLinksWithinCapReturnsAll(t *testing.T) {
	links := make([]*entities.GraphLink, 0, DefaultLinkCap)
	for i := 0; i < DefaultLinkCap; i++ {
		links = append(links, weightedLink(t, i, float64(i)))
	}

	selected := SelectLinks(links, DefaultLinkCap)

	assert.Equal(t, links, selected)
}

func TestSelectLinksAboveCapKeepsTopByStrength(t *testing.T) {
	links := make([]*entities.GraphLink, 0, 150)
	for i := 0; i < 150; i++ {
		links = append(links, weightedLink(t, i, float64(i)))
	}

	selected := SelectLinks(links, 100)

	require.Len(t, selected, 100)
	kept := make(map[*entities.GraphLink]bool, len(selected))
	for _, l := range selected {
		kept[l] = true
	}
	// The 100 highest strengths are indexes 50..149.
	for i, l := range links {
		if i >= 50 {
			assert.True(t, kept[l], "expected link %d (strength %v) to be kept", i, l.Weight())
		} else {
			assert.False(t, kept[l], "expected link %d (strength %v) to be dropped", i, l.Weight())
		}
	}
}

func TestSelectLinksTiesBrokenByOriginalOrder(t *testing.T) {
	links := make([]*entities.GraphLink, 0, 6)
	for i := 0; i < 6; i++ {
		links = append(links, weightedLink(t, i, 1)) // all tied
	}

	selected := SelectLinks(links, 3)

	require.Len(t, selected, 3)
	assert.Same(t, links[0], selected[0])
	assert.Same(t, links[1], selected[1])
	assert.Same(t, links[2], selected[2])
}

func TestSelectLinksFallbackWeights(t *testing.T) {
	strong, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)
	strong.SetStrength(5)

	valued, err := entities.NewGraphLink("c", "d")
	require.NoError(t, err)
	valued.SetValue(3)

	bare, err := entities.NewGraphLink("e", "f")
	require.NoError(t, err)

	selected := SelectLinks([]*entities.GraphLink{bare, valued, strong}, 2)

	require.Len(t, selected, 2)
	assert.Same(t, strong, selected[0])
	assert.Same(t, valued, selected[1])
}

func TestSelectLinksDoesNotReorderInput(t *testing.T) {
	links := []*entities.GraphLink{
		weightedLink(t, 0, 1),
		weightedLink(t, 1, 9),
		weightedLink(t, 2, 5),
	}
	snapshot := []*entities.GraphLink{links[0], links[1], links[2]}

	SelectLinks(links, 2)

	assert.Equal(t, snapshot, links)
}
