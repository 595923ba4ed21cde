package queries

import (
	"errors"
	"time"

	"insightgraph/domain/core/aggregates"
)

// GetGraphQuery requests a snapshot's metadata and statistics
type GetGraphQuery struct {
	UserID  string `json:"user_id"`
	GraphID string `json:"graph_id"`
}

// Validate validates the query
func (q GetGraphQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.GraphID == "" {
		return errors.New("graphID is required")
	}
	return nil
}

// GetGraphResult summarizes one snapshot
type GetGraphResult struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Stats     aggregates.Stats `json:"stats"`
}

// ListGraphsQuery requests all snapshots owned by a user
type ListGraphsQuery struct {
	UserID string `json:"user_id"`
}

// Validate validates the query
func (q ListGraphsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	return nil
}

// ListGraphsResult carries the user's snapshots, newest first
type ListGraphsResult struct {
	Graphs []GetGraphResult `json:"graphs"`
}
