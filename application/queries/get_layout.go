package queries

import (
	"errors"
)

// GetLayoutQuery requests the raw node positions for a snapshot,
// without the scene furniture. Useful for clients that render with
// their own pipeline.
type GetLayoutQuery struct {
	UserID  string `json:"user_id"`
	GraphID string `json:"graph_id"`
}

// Validate validates the query
func (q GetLayoutQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.GraphID == "" {
		return errors.New("graphID is required")
	}
	return nil
}

// PositionedNodeView is one laid-out node in a layout result
type PositionedNodeView struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// GetLayoutResult carries the computed positions
type GetLayoutResult struct {
	GraphID string               `json:"graph_id"`
	Nodes   []PositionedNodeView `json:"nodes"`
}
