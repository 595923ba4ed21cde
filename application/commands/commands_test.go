package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"insightgraph/application/ports"
	"insightgraph/application/services"
	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/core/entities"
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
	if _, ok := r.graphs[id]; !ok {
		return pkgerrors.NewNotFoundError("graph " + id.String())
	}
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

func sampleNodes(t *testing.T, ids ...string) []*entities.GraphNode {
	t.Helper()
	nodes := make([]*entities.GraphNode, 0, len(ids))
	for _, id := range ids {
		n, err := entities.NewGraphNode(id, entities.TypeConcept, "")
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	return nodes
}

func TestIngestGraphStoresSnapshot(t *testing.T) {
	repo := newFakeGraphRepo()
	handler := NewIngestGraphHandler(repo, zap.NewNop())

	graph, err := handler.Handle(context.Background(), IngestGraphCommand{
		UserID: "user-1",
		Name:   "session 12",
		Nodes:  sampleNodes(t, "a", "b"),
	})

	require.NoError(t, err)
	stored, err := repo.GetByID(context.Background(), graph.ID())
	require.NoError(t, err)
	assert.Equal(t, "session 12", stored.Name())
	assert.Equal(t, 2, stored.NodeCount())
}

func TestIngestGraphRequiresUser(t *testing.T) {
	handler := NewIngestGraphHandler(newFakeGraphRepo(), zap.NewNop())

	_, err := handler.Handle(context.Background(), IngestGraphCommand{Nodes: sampleNodes(t, "a")})

	require.Error(t, err)
}

func TestIngestGraphRejectsDuplicateNodes(t *testing.T) {
	handler := NewIngestGraphHandler(newFakeGraphRepo(), zap.NewNop())

	_, err := handler.Handle(context.Background(), IngestGraphCommand{
		UserID: "user-1",
		Nodes:  sampleNodes(t, "a", "a"),
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDeleteGraphRemovesSnapshotAndEvictsLayout(t *testing.T) {
	repo := newFakeGraphRepo()
	cache := newFakeCache()
	ingest := NewIngestGraphHandler(repo, zap.NewNop())
	graph, err := ingest.Handle(context.Background(), IngestGraphCommand{
		UserID: "user-1",
		Nodes:  sampleNodes(t, "a"),
	})
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), services.LayoutCacheKey(graph), "positions", 60))

	handler := NewDeleteGraphHandler(repo, cache, zap.NewNop())
	err = handler.Handle(context.Background(), DeleteGraphCommand{GraphID: graph.ID().String(), UserID: "user-1"})

	require.NoError(t, err)
	_, err = repo.GetByID(context.Background(), graph.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
	_, cached := cache.Get(context.Background(), services.LayoutCacheKey(graph))
	assert.False(t, cached)
}

func TestDeleteGraphEnforcesOwnership(t *testing.T) {
	repo := newFakeGraphRepo()
	ingest := NewIngestGraphHandler(repo, zap.NewNop())
	graph, err := ingest.Handle(context.Background(), IngestGraphCommand{
		UserID: "user-1",
		Nodes:  sampleNodes(t, "a"),
	})
	require.NoError(t, err)

	handler := NewDeleteGraphHandler(repo, newFakeCache(), zap.NewNop())
	err = handler.Handle(context.Background(), DeleteGraphCommand{GraphID: graph.ID().String(), UserID: "user-2"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
	_, err = repo.GetByID(context.Background(), graph.ID())
	assert.NoError(t, err, "snapshot must survive a forbidden delete")
}

type fakeAnalytics struct {
	payload *ports.GraphPayload
	err     error
}

func (f *fakeAnalytics) FetchGraph(context.Context, string) (*ports.GraphPayload, error) {
	return f.payload, f.err
}

func TestImportGraphConvertsPayload(t *testing.T) {
	sentiment := 0.8
	strength := 2.5
	analytics := &fakeAnalytics{payload: &ports.GraphPayload{
		SessionID: "sess-1",
		Name:      "focus group 4",
		Nodes: []ports.NodeData{
			{ID: "p1", Type: "persona", Name: "Moderator", Sentiment: &sentiment},
			{ID: "c1", Type: "concept", Name: "Pricing"},
		},
		Links: []ports.LinkData{
			{SourceID: "p1", TargetID: "c1", Type: "agrees", Strength: &strength},
		},
	}}
	repo := newFakeGraphRepo()
	handler := NewImportGraphHandler(analytics, NewIngestGraphHandler(repo, zap.NewNop()), zap.NewNop())

	graph, err := handler.Handle(context.Background(), ImportGraphCommand{UserID: "user-1", SessionID: "sess-1"})

	require.NoError(t, err)
	assert.Equal(t, "focus group 4", graph.Name())
	assert.Equal(t, 2, graph.NodeCount())
	require.Len(t, graph.ResolveLinks(), 1)
	assert.Equal(t, 2.5, graph.ResolveLinks()[0].Link.Weight())
}

func TestImportGraphPropagatesUpstreamFailure(t *testing.T) {
	analytics := &fakeAnalytics{err: pkgerrors.NewExternalError("analytics", errors.New("connection refused"))}
	handler := NewImportGraphHandler(analytics, NewIngestGraphHandler(newFakeGraphRepo(), zap.NewNop()), zap.NewNop())

	_, err := handler.Handle(context.Background(), ImportGraphCommand{UserID: "user-1", SessionID: "sess-1"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestImportGraphRejectsBadSentiment(t *testing.T) {
	bad := 3.0
	analytics := &fakeAnalytics{payload: &ports.GraphPayload{
		Nodes: []ports.NodeData{{ID: "p1", Type: "persona", Sentiment: &bad}},
	}}
	handler := NewImportGraphHandler(analytics, NewIngestGraphHandler(newFakeGraphRepo(), zap.NewNop()), zap.NewNop())

	_, err := handler.Handle(context.Background(), ImportGraphCommand{UserID: "user-1", SessionID: "sess-1"})

	require.Error(t, err)
}
