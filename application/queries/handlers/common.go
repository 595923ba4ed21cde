// Package handlers contains the query-bus adapters for the read side.
package handlers

import (
	"context"

	"insightgraph/application/ports"
	"insightgraph/application/queries"
	"insightgraph/domain/core/aggregates"
	pkgerrors "insightgraph/pkg/errors"
)

// loadOwnedGraph fetches a snapshot and enforces ownership. A snapshot
// owned by someone else reads as not found so graph ids do not leak
// across users.
func loadOwnedGraph(ctx context.Context, repo ports.GraphRepository, graphID, userID string) (*aggregates.Graph, error) {
	graph, err := repo.GetByID(ctx, aggregates.GraphID(graphID))
	if err != nil {
		return nil, err
	}
	if graph.UserID() != userID {
		return nil, pkgerrors.NewNotFoundError("graph " + graphID)
	}
	return graph, nil
}

// graphResult builds the shared snapshot summary view
func graphResult(g *aggregates.Graph) queries.GetGraphResult {
	return queries.GetGraphResult{
		ID:        g.ID().String(),
		Name:      g.Name(),
		CreatedAt: g.CreatedAt(),
		Stats:     g.ComputeStats(),
	}
}
