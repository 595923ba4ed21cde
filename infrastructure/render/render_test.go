package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/layout"
	"insightgraph/domain/scene"
)

func sampleScene(t *testing.T) *scene.Scene {
	t.Helper()
	a, err := entities.NewGraphNode("a", entities.TypePersona, "Alpha")
	require.NoError(t, err)
	require.NoError(t, a.SetSize(scene.DefaultLabelThreshold+2))
	b, err := entities.NewGraphNode("b", entities.TypeConcept, "Beta")
	require.NoError(t, err)
	l, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)

	sc, err := scene.NewBuilder(0, 0).Build([]layout.PositionedNode{
		{Node: a, X: -30, Y: 10},
		{Node: b, X: 40, Y: -20},
	}, []*entities.GraphLink{l})
	require.NoError(t, err)
	return sc
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteSVG(sampleScene(t), &buf))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "fill:"+scene.Background)
	assert.Contains(t, out, "fill:"+scene.ColorPersona)
	assert.Contains(t, out, "fill:"+scene.ColorConcept)
	assert.Contains(t, out, ">Alpha</text>", "oversized node must carry its label")
	assert.NotContains(t, out, ">Beta</text>", "default-size node label stays hover-only")
}

func TestWriteSVGEmptyScene(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteSVG(scene.EmptyScene(), &buf))

	assert.Contains(t, buf.String(), "no graph data to display")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WritePNG(sampleScene(t), &buf))

	// PNG magic header.
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestProjectorKeepsNodesInsideCanvas(t *testing.T) {
	sc := sampleScene(t)
	p := newProjector(sc, canvasWidth, canvasHeight)

	for _, n := range sc.Nodes {
		x, y := p.point(n.X, n.Y)
		assert.GreaterOrEqual(t, x, margin-1)
		assert.LessOrEqual(t, x, float64(canvasWidth)-margin+1)
		assert.GreaterOrEqual(t, y, margin-1)
		assert.LessOrEqual(t, y, float64(canvasHeight)-margin+1)
	}
}
