package handlers

import (
	"context"

	"insightgraph/application/ports"
	"insightgraph/application/queries"
	"insightgraph/application/queries/bus"
	pkgerrors "insightgraph/pkg/errors"
)

// GetGraphHandler handles GetGraphQuery
type GetGraphHandler struct {
	graphRepo ports.GraphRepository
}

// NewGetGraphHandler creates the handler
func NewGetGraphHandler(graphRepo ports.GraphRepository) *GetGraphHandler {
	return &GetGraphHandler{graphRepo: graphRepo}
}

// Handle implements bus.QueryHandler
func (h *GetGraphHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetGraphQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("invalid query type for GetGraphHandler")
	}

	graph, err := loadOwnedGraph(ctx, h.graphRepo, q.GraphID, q.UserID)
	if err != nil {
		return nil, err
	}

	result := graphResult(graph)
	return &result, nil
}

// ListGraphsHandler handles ListGraphsQuery
type ListGraphsHandler struct {
	graphRepo ports.GraphRepository
}

// NewListGraphsHandler creates the handler
func NewListGraphsHandler(graphRepo ports.GraphRepository) *ListGraphsHandler {
	return &ListGraphsHandler{graphRepo: graphRepo}
}

// Handle implements bus.QueryHandler
func (h *ListGraphsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListGraphsQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("invalid query type for ListGraphsHandler")
	}

	graphs, err := h.graphRepo.GetByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	result := &queries.ListGraphsResult{Graphs: make([]queries.GetGraphResult, 0, len(graphs))}
	for _, g := range graphs {
		result.Graphs = append(result.Graphs, graphResult(g))
	}
	return result, nil
}
