// Package ports declares the interfaces the application layer depends
// on. Implementations live in infrastructure; the application never
// knows which one it got.
package ports

import (
	"context"

	"insightgraph/domain/core/aggregates"
)

// GraphRepository stores ingested graph snapshots for the lifetime of a
// viewing session. Snapshots are immutable, so there is no update path:
// re-ingesting replaces by saving a new snapshot and deleting the old.
type GraphRepository interface {
	// Save stores a snapshot
	Save(ctx context.Context, graph *aggregates.Graph) error

	// GetByID retrieves a snapshot by its identity
	GetByID(ctx context.Context, id aggregates.GraphID) (*aggregates.Graph, error)

	// GetByUserID retrieves all snapshots owned by a user, newest first
	GetByUserID(ctx context.Context, userID string) ([]*aggregates.Graph, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, id aggregates.GraphID) error
}

// Cache is the layout memoization store. Entries are keyed by snapshot
// fingerprint; TTL is in seconds.
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}

// NodeData is one node as delivered by the analytics service
type NodeData struct {
	ID        string
	Type      string
	Name      string
	Sentiment *float64
	Size      *float64
}

// LinkData is one relationship as delivered by the analytics service
type LinkData struct {
	SourceID  string
	TargetID  string
	Type      string
	Sentiment *float64
	Strength  *float64
	Value     *float64
}

// GraphPayload is the raw graph extracted from one analyzed focus-group
// session, before domain validation.
type GraphPayload struct {
	SessionID string
	Name      string
	Nodes     []NodeData
	Links     []LinkData
}

// AnalyticsSource fetches analyzed session graphs from the upstream
// analytics service.
type AnalyticsSource interface {
	// FetchGraph retrieves the knowledge graph for an analyzed session
	FetchGraph(ctx context.Context, sessionID string) (*GraphPayload, error)
}

// LayoutMetrics records layout pipeline observations
type LayoutMetrics interface {
	// LayoutComputed records one full simulation run with its duration in seconds
	LayoutComputed(seconds float64)

	// LayoutCacheHit records a memoized layout being served
	LayoutCacheHit()
}

// SceneMetrics records scene assembly observations
type SceneMetrics interface {
	// SceneBuilt records one assembled scene and how many links assembly dropped
	SceneBuilt(prunedLinks int)
}
