package handlers

import (
	"context"

	"insightgraph/application/ports"
	"insightgraph/application/queries"
	"insightgraph/application/queries/bus"
	"insightgraph/application/services"
	pkgerrors "insightgraph/pkg/errors"
)

// GetLayoutHandler handles GetLayoutQuery
type GetLayoutHandler struct {
	graphRepo ports.GraphRepository
	layoutSvc *services.LayoutService
}

// NewGetLayoutHandler creates the handler
func NewGetLayoutHandler(graphRepo ports.GraphRepository, layoutSvc *services.LayoutService) *GetLayoutHandler {
	return &GetLayoutHandler{
		graphRepo: graphRepo,
		layoutSvc: layoutSvc,
	}
}

// Handle implements bus.QueryHandler
func (h *GetLayoutHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetLayoutQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("invalid query type for GetLayoutHandler")
	}

	graph, err := loadOwnedGraph(ctx, h.graphRepo, q.GraphID, q.UserID)
	if err != nil {
		return nil, err
	}

	positioned, err := h.layoutSvc.Layout(ctx, graph)
	if err != nil {
		return nil, err
	}

	result := &queries.GetLayoutResult{
		GraphID: graph.ID().String(),
		Nodes:   make([]queries.PositionedNodeView, 0, len(positioned)),
	}
	for _, pn := range positioned {
		result.Nodes = append(result.Nodes, queries.PositionedNodeView{
			ID:    pn.Node.ID().String(),
			Type:  string(pn.Node.Type()),
			Label: pn.Node.Label(),
			X:     pn.X,
			Y:     pn.Y,
			Z:     pn.Z,
		})
	}
	return result, nil
}
