package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"insightgraph/application/ports"
	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/core/entities"
)

// MaxGraphNodes bounds a single snapshot; anything larger is upstream
// misuse, not a visualization workload.
const MaxGraphNodes = 10000

// IngestGraphCommand registers a new graph snapshot for a viewing
// session. Nodes and links arrive already validated into domain
// entities by the transport layer.
type IngestGraphCommand struct {
	UserID string
	Name   string
	Nodes  []*entities.GraphNode
	Links  []*entities.GraphLink
}

// Validate validates the command
func (cmd IngestGraphCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(cmd.Nodes) > MaxGraphNodes {
		return errors.New("graph exceeds maximum node count")
	}
	return nil
}

// IngestGraphHandler handles the IngestGraphCommand
type IngestGraphHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewIngestGraphHandler creates a new handler instance
func NewIngestGraphHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *IngestGraphHandler {
	return &IngestGraphHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle builds the immutable snapshot aggregate and stores it.
// Dangling links are accepted here; they get dropped at layout and
// render time.
func (h *IngestGraphHandler) Handle(ctx context.Context, cmd IngestGraphCommand) (*aggregates.Graph, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	graph, err := aggregates.NewGraph(cmd.UserID, cmd.Name, cmd.Nodes, cmd.Links)
	if err != nil {
		return nil, err
	}

	if err := h.graphRepo.Save(ctx, graph); err != nil {
		return nil, err
	}

	h.logger.Info("graph snapshot ingested",
		zap.String("graphID", graph.ID().String()),
		zap.String("userID", cmd.UserID),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("links", graph.LinkCount()),
	)
	return graph, nil
}
