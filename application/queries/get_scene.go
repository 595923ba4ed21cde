package queries

import (
	"errors"
)

// GetSceneQuery requests the renderable 3D scene for a snapshot.
// LinkCap optionally overrides the configured rendering cap for this
// request only; zero means the configured default.
type GetSceneQuery struct {
	UserID  string `json:"user_id"`
	GraphID string `json:"graph_id"`
	LinkCap int    `json:"link_cap,omitempty"`
}

// Validate validates the query
func (q GetSceneQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.GraphID == "" {
		return errors.New("graphID is required")
	}
	if q.LinkCap < 0 {
		return errors.New("link cap cannot be negative")
	}
	return nil
}
