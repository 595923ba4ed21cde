package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "insightgraph/pkg/errors"
)

func TestNodeRefAcceptsBothEncodings(t *testing.T) {
	var req CreateGraphRequest
	payload := `{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"links": [
			{"source": "a", "target": "b"},
			{"source": {"id": "b"}, "target": {"id": "a"}}
		]
	}`

	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Len(t, req.Links, 2)
	assert.Equal(t, "a", req.Links[0].Source.ID)
	assert.Equal(t, "b", req.Links[1].Source.ID)
	assert.Equal(t, "a", req.Links[1].Target.ID)
}

func TestNodeRefRejectsMalformedEndpoint(t *testing.T) {
	var req CreateGraphRequest
	err := json.Unmarshal([]byte(`{"links": [{"source": 42, "target": "b"}]}`), &req)
	assert.Error(t, err)
}

func TestCreateGraphRequestToEntities(t *testing.T) {
	sentiment := 0.8
	size := 12.0
	strength := 2.5
	req := CreateGraphRequest{
		Name: "session 4",
		Nodes: []NodeRequest{
			{ID: "p1", Type: "persona", Name: "Moderator", Sentiment: &sentiment},
			{ID: "c1", Type: "concept", Name: "Pricing", Size: &size},
		},
		Links: []LinkRequest{
			{Source: NodeRef{ID: "p1"}, Target: NodeRef{ID: "c1"}, Strength: &strength},
		},
	}

	nodes, links, err := req.ToEntities()
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Moderator", nodes[0].Name())
	assert.True(t, nodes[0].Sentiment().Present())
	assert.Equal(t, 12.0, nodes[1].Size())
	require.Len(t, links, 1)
	assert.Equal(t, "p1", links[0].SourceID().String())
}

func TestCreateGraphRequestRejectsOutOfRangeSentiment(t *testing.T) {
	sentiment := 1.5
	req := CreateGraphRequest{
		Nodes: []NodeRequest{{ID: "a", Sentiment: &sentiment}},
	}

	_, _, err := req.ToEntities()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCreateGraphRequestRejectsMissingEndpoint(t *testing.T) {
	req := CreateGraphRequest{
		Nodes: []NodeRequest{{ID: "a"}},
		Links: []LinkRequest{{Source: NodeRef{ID: "a"}}},
	}

	err := req.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCreateGraphRequestAllowsEmptyGraph(t *testing.T) {
	req := CreateGraphRequest{}

	nodes, links, err := req.ToEntities()
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Empty(t, links)
}

func TestImportGraphRequestValidation(t *testing.T) {
	assert.Error(t, (&ImportGraphRequest{}).Validate())
	assert.NoError(t, (&ImportGraphRequest{SessionID: "sess-1"}).Validate())
}
