package valueobjects

import (
	"encoding/json"
	"errors"
)

// NodeID is a value object representing a unique node identifier.
// IDs are assigned by the upstream analytics service and are opaque
// strings, not UUIDs.
type NodeID struct {
	value string
}

// NewNodeID creates a NodeID from an analytics-assigned identifier
func NewNodeID(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// Truncated returns a shortened form of the ID suitable as a display
// label fallback when a node carries no name.
func (id NodeID) Truncated(max int) string {
	if max <= 0 || len(id.value) <= max {
		return id.value
	}
	return id.value[:max] + "…"
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("NodeID must be a string")
	}
	id.value = s
	return nil
}
