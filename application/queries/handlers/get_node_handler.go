package handlers

import (
	"context"

	"insightgraph/application/ports"
	"insightgraph/application/queries"
	"insightgraph/application/queries/bus"
	"insightgraph/application/services"
	"insightgraph/domain/core/valueobjects"
	"insightgraph/domain/scene"
	pkgerrors "insightgraph/pkg/errors"
)

// GetNodeHandler handles GetNodeQuery, the detail lookup behind a node
// click in the rendered scene.
type GetNodeHandler struct {
	graphRepo ports.GraphRepository
	layoutSvc *services.LayoutService
}

// NewGetNodeHandler creates the handler
func NewGetNodeHandler(graphRepo ports.GraphRepository, layoutSvc *services.LayoutService) *GetNodeHandler {
	return &GetNodeHandler{
		graphRepo: graphRepo,
		layoutSvc: layoutSvc,
	}
}

// Handle implements bus.QueryHandler
func (h *GetNodeHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetNodeQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("invalid query type for GetNodeHandler")
	}

	graph, err := loadOwnedGraph(ctx, h.graphRepo, q.GraphID, q.UserID)
	if err != nil {
		return nil, err
	}

	nodeID, err := valueobjects.NewNodeID(q.NodeID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	node, err := graph.Node(nodeID)
	if err != nil {
		return nil, err
	}

	result := &queries.GetNodeResult{
		ID:        node.ID().String(),
		Type:      string(node.Type()),
		Name:      node.Name(),
		Label:     node.Label(),
		Size:      node.Size(),
		Color:     scene.NodeColor(node),
		Neighbors: []string{},
	}
	if node.Sentiment().Present() {
		score := node.Sentiment().Score()
		result.Sentiment = &score
		result.Band = string(node.Sentiment().Band())
	}

	// The position reported is the memoized layout's, so the detail view
	// agrees with what the user clicked on.
	positioned, err := h.layoutSvc.Layout(ctx, graph)
	if err != nil {
		return nil, err
	}
	for _, pn := range positioned {
		if pn.Node.ID().Equals(nodeID) {
			result.Position = [3]float64{pn.X, pn.Y, pn.Z}
			break
		}
	}

	for _, rl := range graph.ResolveLinks() {
		switch {
		case rl.Source.ID().Equals(nodeID):
			result.Neighbors = append(result.Neighbors, rl.Target.ID().String())
		case rl.Target.ID().Equals(nodeID):
			result.Neighbors = append(result.Neighbors, rl.Source.ID().String())
		}
	}
	result.Degree = len(result.Neighbors)

	return result, nil
}
