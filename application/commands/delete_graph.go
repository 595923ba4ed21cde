package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"insightgraph/application/ports"
	"insightgraph/application/services"
	"insightgraph/domain/core/aggregates"
	pkgerrors "insightgraph/pkg/errors"
)

// DeleteGraphCommand removes a snapshot and its memoized layout
type DeleteGraphCommand struct {
	GraphID string
	UserID  string
}

// Validate validates the command
func (cmd DeleteGraphCommand) Validate() error {
	if cmd.GraphID == "" {
		return errors.New("graph ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// DeleteGraphHandler handles the DeleteGraphCommand
type DeleteGraphHandler struct {
	graphRepo ports.GraphRepository
	cache     ports.Cache
	logger    *zap.Logger
}

// NewDeleteGraphHandler creates a new handler instance
func NewDeleteGraphHandler(graphRepo ports.GraphRepository, cache ports.Cache, logger *zap.Logger) *DeleteGraphHandler {
	return &DeleteGraphHandler{
		graphRepo: graphRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Handle deletes the snapshot after an ownership check and evicts its
// memoized layout so the cache never outlives the data it was derived
// from.
func (h *DeleteGraphHandler) Handle(ctx context.Context, cmd DeleteGraphCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := aggregates.GraphID(cmd.GraphID)
	graph, err := h.graphRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if graph.UserID() != cmd.UserID {
		return pkgerrors.NewForbiddenError("graph belongs to a different user")
	}

	if err := h.graphRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := h.cache.Delete(ctx, services.LayoutCacheKey(graph)); err != nil {
		h.logger.Warn("failed to evict memoized layout",
			zap.String("graphID", cmd.GraphID),
			zap.Error(err),
		)
	}

	h.logger.Info("graph snapshot deleted", zap.String("graphID", cmd.GraphID))
	return nil
}
