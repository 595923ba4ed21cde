package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"insightgraph/application/ports"
	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
	pkgerrors "insightgraph/pkg/errors"
)

// ImportGraphCommand pulls an analyzed session graph straight from the
// analytics service instead of having the panel post it.
type ImportGraphCommand struct {
	UserID    string
	SessionID string
	Name      string
}

// Validate validates the command
func (cmd ImportGraphCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.SessionID == "" {
		return errors.New("session ID is required")
	}
	return nil
}

// ImportGraphHandler handles the ImportGraphCommand
type ImportGraphHandler struct {
	analytics ports.AnalyticsSource
	ingest    *IngestGraphHandler
	logger    *zap.Logger
}

// NewImportGraphHandler creates a new handler instance
func NewImportGraphHandler(analytics ports.AnalyticsSource, ingest *IngestGraphHandler, logger *zap.Logger) *ImportGraphHandler {
	return &ImportGraphHandler{
		analytics: analytics,
		ingest:    ingest,
		logger:    logger,
	}
}

// Handle fetches the session graph upstream, converts it into domain
// entities and ingests the result as a new snapshot.
func (h *ImportGraphHandler) Handle(ctx context.Context, cmd ImportGraphCommand) (*aggregates.Graph, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	payload, err := h.analytics.FetchGraph(ctx, cmd.SessionID)
	if err != nil {
		h.logger.Error("analytics fetch failed",
			zap.String("sessionID", cmd.SessionID),
			zap.Error(err),
		)
		return nil, err
	}

	nodes, links, err := payloadToEntities(payload)
	if err != nil {
		return nil, err
	}

	name := cmd.Name
	if name == "" {
		name = payload.Name
	}

	return h.ingest.Handle(ctx, IngestGraphCommand{
		UserID: cmd.UserID,
		Name:   name,
		Nodes:  nodes,
		Links:  links,
	})
}

// payloadToEntities converts the upstream wire shapes into domain
// entities. A malformed node fails the whole import; malformed optional
// attributes are a validation error too, never silently dropped.
func payloadToEntities(payload *ports.GraphPayload) ([]*entities.GraphNode, []*entities.GraphLink, error) {
	if payload == nil {
		return nil, nil, pkgerrors.NewExternalError("analytics", errors.New("empty payload"))
	}

	nodes := make([]*entities.GraphNode, 0, len(payload.Nodes))
	for _, nd := range payload.Nodes {
		node, err := entities.NewGraphNode(nd.ID, entities.NodeType(nd.Type), nd.Name)
		if err != nil {
			return nil, nil, err
		}
		if nd.Sentiment != nil {
			s, err := valueobjects.NewSentiment(*nd.Sentiment)
			if err != nil {
				return nil, nil, err
			}
			node.SetSentiment(s)
		}
		if nd.Size != nil {
			if err := node.SetSize(*nd.Size); err != nil {
				return nil, nil, err
			}
		}
		nodes = append(nodes, node)
	}

	links := make([]*entities.GraphLink, 0, len(payload.Links))
	for _, ld := range payload.Links {
		link, err := entities.NewGraphLink(ld.SourceID, ld.TargetID)
		if err != nil {
			return nil, nil, err
		}
		if ld.Type != "" {
			link.SetType(entities.LinkType(ld.Type))
		}
		if ld.Sentiment != nil {
			s, err := valueobjects.NewSentiment(*ld.Sentiment)
			if err != nil {
				return nil, nil, err
			}
			link.SetSentiment(s)
		}
		if ld.Strength != nil {
			link.SetStrength(*ld.Strength)
		}
		if ld.Value != nil {
			link.SetValue(*ld.Value)
		}
		links = append(links, link)
	}

	return nodes, links, nil
}
