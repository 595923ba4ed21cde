package memory

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"insightgraph/domain/core/aggregates"
	pkgerrors "insightgraph/pkg/errors"
)

// GraphRepository is the in-memory snapshot registry. It implements
// ports.GraphRepository for the lifetime of the process, which matches
// the lifetime of the viewing sessions it serves.
type GraphRepository struct {
	mu     sync.RWMutex
	graphs map[aggregates.GraphID]*aggregates.Graph
	logger *zap.Logger
}

// NewGraphRepository creates an empty registry
func NewGraphRepository(logger *zap.Logger) *GraphRepository {
	return &GraphRepository{
		graphs: make(map[aggregates.GraphID]*aggregates.Graph),
		logger: logger,
	}
}

// Save stores a snapshot
func (r *GraphRepository) Save(_ context.Context, graph *aggregates.Graph) error {
	if graph == nil {
		return pkgerrors.NewValidationError("graph cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.graphs[graph.ID()] = graph
	r.logger.Debug("snapshot stored",
		zap.String("graphID", graph.ID().String()),
		zap.Int("total", len(r.graphs)),
	)
	return nil
}

// GetByID retrieves a snapshot by its identity
func (r *GraphRepository) GetByID(_ context.Context, id aggregates.GraphID) (*aggregates.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graph, ok := r.graphs[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("graph " + id.String())
	}
	return graph, nil
}

// GetByUserID retrieves all snapshots owned by a user, newest first
func (r *GraphRepository) GetByUserID(_ context.Context, userID string) ([]*aggregates.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*aggregates.Graph
	for _, g := range r.graphs {
		if g.UserID() == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// Delete removes a snapshot
func (r *GraphRepository) Delete(_ context.Context, id aggregates.GraphID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.graphs[id]; !ok {
		return pkgerrors.NewNotFoundError("graph " + id.String())
	}
	delete(r.graphs, id)
	return nil
}
