package queries

import (
	"errors"
)

// GetNodeQuery requests the detail view behind a node click in the
// rendered scene.
type GetNodeQuery struct {
	UserID  string `json:"user_id"`
	GraphID string `json:"graph_id"`
	NodeID  string `json:"node_id"`
}

// Validate validates the query
func (q GetNodeQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.GraphID == "" {
		return errors.New("graphID is required")
	}
	if q.NodeID == "" {
		return errors.New("nodeID is required")
	}
	return nil
}

// GetNodeResult is the node detail payload
type GetNodeResult struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Name      string     `json:"name,omitempty"`
	Label     string     `json:"label"`
	Sentiment *float64   `json:"sentiment,omitempty"`
	Band      string     `json:"sentiment_band,omitempty"`
	Size      float64    `json:"size"`
	Color     string     `json:"color"`
	Position  [3]float64 `json:"position"`
	Degree    int        `json:"degree"`
	Neighbors []string   `json:"neighbors"`
}
