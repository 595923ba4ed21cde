package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"insightgraph/application/queries"
	"insightgraph/application/services"
	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
	"insightgraph/domain/layout"
	"insightgraph/domain/scene"
	pkgerrors "insightgraph/pkg/errors"
)

type fakeGraphRepo struct {
	mu     sync.Mutex
	graphs map[aggregates.GraphID]*aggregates.Graph
}

func newFakeGraphRepo() *fakeGraphRepo {
	return &fakeGraphRepo{graphs: map[aggregates.GraphID]*aggregates.Graph{}}
}

func (r *fakeGraphRepo) Save(_ context.Context, g *aggregates.Graph) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphs[g.ID()] = g
	return nil
}

func (r *fakeGraphRepo) GetByID(_ context.Context, id aggregates.GraphID) (*aggregates.Graph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.graphs[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("graph " + id.String())
	}
	return g, nil
}

func (r *fakeGraphRepo) GetByUserID(_ context.Context, userID string) ([]*aggregates.Graph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*aggregates.Graph
	for _, g := range r.graphs {
		if g.UserID() == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGraphRepo) Delete(_ context.Context, id aggregates.GraphID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.graphs, id)
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]interface{}{}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) LayoutComputed(float64) {}
func (noopMetrics) LayoutCacheHit()        {}
func (noopMetrics) SceneBuilt(int)         {}

func newLayoutService() *services.LayoutService {
	return services.NewLayoutService(layout.NewEngine(layout.DefaultParams()), newFakeCache(), 60, noopMetrics{}, zap.NewNop())
}

func storedGraph(t *testing.T, repo *fakeGraphRepo, userID string) *aggregates.Graph {
	t.Helper()
	persona, err := entities.NewGraphNode("p1", entities.TypePersona, "Moderator")
	require.NoError(t, err)
	s, err := valueobjects.NewSentiment(0.8)
	require.NoError(t, err)
	persona.SetSentiment(s)
	concept, err := entities.NewGraphNode("c1", entities.TypeConcept, "Pricing")
	require.NoError(t, err)
	emotion, err := entities.NewGraphNode("e1", entities.TypeEmotion, "Trust")
	require.NoError(t, err)

	l1, err := entities.NewGraphLink("p1", "c1")
	require.NoError(t, err)
	dangling, err := entities.NewGraphLink("p1", "ghost")
	require.NoError(t, err)

	g, err := aggregates.NewGraph(userID, "session", []*entities.GraphNode{persona, concept, emotion}, []*entities.GraphLink{l1, dangling})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), g))
	return g
}

func TestBuildSceneHandler(t *testing.T) {
	repo := newFakeGraphRepo()
	g := storedGraph(t, repo, "user-1")
	handler := NewBuildSceneHandler(repo, newLayoutService(), scene.NewBuilder(0, 0), noopMetrics{}, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.GetSceneQuery{UserID: "user-1", GraphID: g.ID().String()})

	require.NoError(t, err)
	sc, ok := result.(*scene.Scene)
	require.True(t, ok)
	assert.False(t, sc.Empty)
	assert.Len(t, sc.Nodes, 3)
	assert.Len(t, sc.Links, 1, "dangling link must not render")
	assert.Equal(t, scene.ColorPositive, sc.Nodes[0].Color)
}

func TestBuildSceneHandlerEmptyGraph(t *testing.T) {
	repo := newFakeGraphRepo()
	g, err := aggregates.NewGraph("user-1", "empty", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), g))
	handler := NewBuildSceneHandler(repo, newLayoutService(), scene.NewBuilder(0, 0), noopMetrics{}, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.GetSceneQuery{UserID: "user-1", GraphID: g.ID().String()})

	require.NoError(t, err)
	sc := result.(*scene.Scene)
	assert.True(t, sc.Empty)
	assert.NotEmpty(t, sc.Message)
}

func TestBuildSceneHandlerHidesForeignGraphs(t *testing.T) {
	repo := newFakeGraphRepo()
	g := storedGraph(t, repo, "user-1")
	handler := NewBuildSceneHandler(repo, newLayoutService(), scene.NewBuilder(0, 0), noopMetrics{}, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetSceneQuery{UserID: "user-2", GraphID: g.ID().String()})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err), "foreign graphs must read as not found")
}

func TestGetLayoutHandler(t *testing.T) {
	repo := newFakeGraphRepo()
	g := storedGraph(t, repo, "user-1")
	handler := NewGetLayoutHandler(repo, newLayoutService())

	result, err := handler.Handle(context.Background(), queries.GetLayoutQuery{UserID: "user-1", GraphID: g.ID().String()})

	require.NoError(t, err)
	layoutResult, ok := result.(*queries.GetLayoutResult)
	require.True(t, ok)
	assert.Equal(t, g.ID().String(), layoutResult.GraphID)
	require.Len(t, layoutResult.Nodes, 3)
	assert.Equal(t, "p1", layoutResult.Nodes[0].ID)
	assert.Zero(t, layoutResult.Nodes[0].Z)
}

func TestGetNodeHandler(t *testing.T) {
	repo := newFakeGraphRepo()
	layoutSvc := newLayoutService()
	g := storedGraph(t, repo, "user-1")
	handler := NewGetNodeHandler(repo, layoutSvc)

	result, err := handler.Handle(context.Background(), queries.GetNodeQuery{UserID: "user-1", GraphID: g.ID().String(), NodeID: "p1"})

	require.NoError(t, err)
	detail, ok := result.(*queries.GetNodeResult)
	require.True(t, ok)
	assert.Equal(t, "p1", detail.ID)
	assert.Equal(t, "Moderator", detail.Name)
	assert.Equal(t, scene.ColorPositive, detail.Color)
	require.NotNil(t, detail.Sentiment)
	assert.Equal(t, 0.8, *detail.Sentiment)
	assert.Equal(t, "positive", detail.Band)
	assert.Equal(t, []string{"c1"}, detail.Neighbors, "dangling endpoint is not a neighbor")
	assert.Equal(t, 1, detail.Degree)

	positioned, err := layoutSvc.Layout(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{positioned[0].X, positioned[0].Y, 0}, detail.Position)
}

func TestGetNodeHandlerUnknownNode(t *testing.T) {
	repo := newFakeGraphRepo()
	g := storedGraph(t, repo, "user-1")
	handler := NewGetNodeHandler(repo, newLayoutService())

	_, err := handler.Handle(context.Background(), queries.GetNodeQuery{UserID: "user-1", GraphID: g.ID().String(), NodeID: "ghost"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetGraphHandlerStats(t *testing.T) {
	repo := newFakeGraphRepo()
	g := storedGraph(t, repo, "user-1")
	handler := NewGetGraphHandler(repo)

	result, err := handler.Handle(context.Background(), queries.GetGraphQuery{UserID: "user-1", GraphID: g.ID().String()})

	require.NoError(t, err)
	summary, ok := result.(*queries.GetGraphResult)
	require.True(t, ok)
	assert.Equal(t, 3, summary.Stats.NodeCount)
	assert.Equal(t, 2, summary.Stats.LinkCount)
	assert.Equal(t, 1, summary.Stats.DanglingLink)
}

func TestListGraphsHandlerFiltersByUser(t *testing.T) {
	repo := newFakeGraphRepo()
	storedGraph(t, repo, "user-1")
	storedGraph(t, repo, "user-1")
	storedGraph(t, repo, "user-2")
	handler := NewListGraphsHandler(repo)

	result, err := handler.Handle(context.Background(), queries.ListGraphsQuery{UserID: "user-1"})

	require.NoError(t, err)
	list, ok := result.(*queries.ListGraphsResult)
	require.True(t, ok)
	assert.Len(t, list.Graphs, 2)
}
