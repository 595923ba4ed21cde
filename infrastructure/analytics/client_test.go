package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "insightgraph/pkg/errors"
)

func TestFetchGraphDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions/sess-1/graph", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"session_id": "sess-1",
			"name": "focus group 4",
			"nodes": [
				{"id": "p1", "type": "persona", "name": "Moderator", "sentiment": 0.8},
				{"id": "c1", "type": "concept", "name": "Pricing", "size": 12}
			],
			"links": [
				{"source": "p1", "target": "c1", "type": "agrees", "strength": 2.5}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zap.NewNop())
	payload, err := client.FetchGraph(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "focus group 4", payload.Name)
	require.Len(t, payload.Nodes, 2)
	require.NotNil(t, payload.Nodes[0].Sentiment)
	assert.Equal(t, 0.8, *payload.Nodes[0].Sentiment)
	require.Len(t, payload.Links, 1)
	assert.Equal(t, "p1", payload.Links[0].SourceID)
	require.NotNil(t, payload.Links[0].Strength)
	assert.Equal(t, 2.5, *payload.Links[0].Strength)
}

func TestFetchGraphUnknownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := client.FetchGraph(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestFetchGraphUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := client.FetchGraph(context.Background(), "sess-1")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestFetchGraphWithoutUpstream(t *testing.T) {
	client := NewClient("", time.Second, zap.NewNop())

	_, err := client.FetchGraph(context.Background(), "sess-1")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zap.NewNop())
	for i := 0; i < 6; i++ {
		_, err := client.FetchGraph(context.Background(), "sess-1")
		require.Error(t, err)
	}

	// The sixth call must have been short-circuited.
	assert.Equal(t, 5, requests)
}
