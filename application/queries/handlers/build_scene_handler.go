package handlers

import (
	"context"

	"go.uber.org/zap"

	"insightgraph/application/ports"
	"insightgraph/application/queries"
	"insightgraph/application/queries/bus"
	"insightgraph/application/services"
	"insightgraph/domain/scene"
	pkgerrors "insightgraph/pkg/errors"
)

// BuildSceneHandler handles GetSceneQuery: memoized layout first, then
// scene assembly over the laid-out nodes.
type BuildSceneHandler struct {
	graphRepo ports.GraphRepository
	layoutSvc *services.LayoutService
	builder   *scene.Builder
	metrics   ports.SceneMetrics
	logger    *zap.Logger
}

// NewBuildSceneHandler creates the handler
func NewBuildSceneHandler(graphRepo ports.GraphRepository, layoutSvc *services.LayoutService, builder *scene.Builder, metrics ports.SceneMetrics, logger *zap.Logger) *BuildSceneHandler {
	return &BuildSceneHandler{
		graphRepo: graphRepo,
		layoutSvc: layoutSvc,
		builder:   builder,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle implements bus.QueryHandler
func (h *BuildSceneHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetSceneQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("invalid query type for BuildSceneHandler")
	}

	graph, err := loadOwnedGraph(ctx, h.graphRepo, q.GraphID, q.UserID)
	if err != nil {
		return nil, err
	}

	positioned, err := h.layoutSvc.Layout(ctx, graph)
	if err != nil {
		return nil, err
	}

	builder := h.builder
	if q.LinkCap > 0 {
		builder = builder.WithLinkCap(q.LinkCap)
	}

	sc, err := builder.Build(positioned, graph.Links())
	if err != nil {
		h.logger.Error("scene construction failed",
			zap.String("graphID", q.GraphID),
			zap.Error(err),
		)
		return nil, err
	}

	h.metrics.SceneBuilt(len(graph.Links()) - len(sc.Links))
	return sc, nil
}
