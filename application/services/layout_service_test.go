package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/core/entities"
	"insightgraph/domain/layout"
)

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

type fakeMetrics struct {
	computed atomic.Int64
	hits     atomic.Int64
}

func (m *fakeMetrics) LayoutComputed(float64) { m.computed.Add(1) }
func (m *fakeMetrics) LayoutCacheHit()        { m.hits.Add(1) }

func testGraph(t *testing.T) *aggregates.Graph {
	t.Helper()
	var nodes []*entities.GraphNode
	for _, id := range []string{"a", "b", "c"} {
		n, err := entities.NewGraphNode(id, entities.TypeConcept, "")
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	l, err := entities.NewGraphLink("a", "b")
	require.NoError(t, err)
	g, err := aggregates.NewGraph("user-1", "snapshot", nodes, []*entities.GraphLink{l})
	require.NoError(t, err)
	return g
}

func TestLayoutComputesOncePerSnapshot(t *testing.T) {
	metrics := &fakeMetrics{}
	svc := NewLayoutService(layout.NewEngine(layout.DefaultParams()), newFakeCache(), 60, metrics, zap.NewNop())
	graph := testGraph(t)

	first, err := svc.Layout(context.Background(), graph)
	require.NoError(t, err)
	second, err := svc.Layout(context.Background(), graph)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, metrics.computed.Load())
	assert.EqualValues(t, 1, metrics.hits.Load())
}

func TestLayoutDistinctSnapshotsComputeSeparately(t *testing.T) {
	metrics := &fakeMetrics{}
	svc := NewLayoutService(layout.NewEngine(layout.DefaultParams()), newFakeCache(), 60, metrics, zap.NewNop())

	_, err := svc.Layout(context.Background(), testGraph(t))
	require.NoError(t, err)
	_, err = svc.Layout(context.Background(), testGraph(t))
	require.NoError(t, err)

	assert.EqualValues(t, 2, metrics.computed.Load())
}

func TestLayoutConcurrentRequestsCollapse(t *testing.T) {
	metrics := &fakeMetrics{}
	svc := NewLayoutService(layout.NewEngine(layout.DefaultParams()), newFakeCache(), 60, metrics, zap.NewNop())
	graph := testGraph(t)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Layout(context.Background(), graph)
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, metrics.computed.Load())
}

func TestLayoutRecomputesAfterEviction(t *testing.T) {
	metrics := &fakeMetrics{}
	cache := newFakeCache()
	svc := NewLayoutService(layout.NewEngine(layout.DefaultParams()), cache, 60, metrics, zap.NewNop())
	graph := testGraph(t)

	first, err := svc.Layout(context.Background(), graph)
	require.NoError(t, err)
	require.NoError(t, cache.Delete(context.Background(), LayoutCacheKey(graph)))
	second, err := svc.Layout(context.Background(), graph)
	require.NoError(t, err)

	// Deterministic simulation: eviction costs a recompute, not a
	// different answer.
	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, metrics.computed.Load())
}
