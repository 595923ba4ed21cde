// Package dto defines the REST wire shapes and their conversion into
// domain entities.
package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"insightgraph/domain/core/entities"
	"insightgraph/domain/core/valueobjects"
	pkgerrors "insightgraph/pkg/errors"
)

var validate = validator.New()

// NodeRef accepts both endpoint encodings clients emit: a bare node id
// string, or an object carrying an "id" field.
type NodeRef struct {
	ID string
}

// UnmarshalJSON implements the loose endpoint decoding
func (r *NodeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("link endpoint must be a node id or an object with an id field")
	}
	if obj.ID == "" {
		return errors.New("link endpoint object is missing its id")
	}
	r.ID = obj.ID
	return nil
}

// MarshalJSON always emits the canonical string form
func (r NodeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// NodeRequest is one node in an ingest payload
type NodeRequest struct {
	ID        string   `json:"id" validate:"required,max=256"`
	Type      string   `json:"type"`
	Name      string   `json:"name" validate:"max=512"`
	Sentiment *float64 `json:"sentiment" validate:"omitempty,gte=-1,lte=1"`
	Size      *float64 `json:"size" validate:"omitempty,gt=0"`
}

// LinkRequest is one link in an ingest payload
type LinkRequest struct {
	Source    NodeRef  `json:"source"`
	Target    NodeRef  `json:"target"`
	Type      string   `json:"type"`
	Sentiment *float64 `json:"sentiment" validate:"omitempty,gte=-1,lte=1"`
	Strength  *float64 `json:"strength" validate:"omitempty,gte=0"`
	Value     *float64 `json:"value" validate:"omitempty,gte=0"`
}

// CreateGraphRequest is the ingest payload. An empty node list is
// valid; it renders as the explicit empty-scene state.
type CreateGraphRequest struct {
	Name  string        `json:"name" validate:"max=256"`
	Nodes []NodeRequest `json:"nodes" validate:"dive"`
	Links []LinkRequest `json:"links" validate:"dive"`
}

// Validate checks field constraints before entity conversion
func (req *CreateGraphRequest) Validate() error {
	if err := validate.Struct(req); err != nil {
		return pkgerrors.NewValidationError(validationMessage(err))
	}
	for i, l := range req.Links {
		if l.Source.ID == "" {
			return pkgerrors.NewValidationError(fmt.Sprintf("links[%d]: source is required", i))
		}
		if l.Target.ID == "" {
			return pkgerrors.NewValidationError(fmt.Sprintf("links[%d]: target is required", i))
		}
	}
	return nil
}

// ToEntities converts the wire payload into domain entities. A single
// malformed element fails the whole request.
func (req *CreateGraphRequest) ToEntities() ([]*entities.GraphNode, []*entities.GraphLink, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	nodes := make([]*entities.GraphNode, 0, len(req.Nodes))
	for _, n := range req.Nodes {
		node, err := entities.NewGraphNode(n.ID, entities.NodeType(n.Type), n.Name)
		if err != nil {
			return nil, nil, err
		}
		if n.Sentiment != nil {
			s, err := valueobjects.NewSentiment(*n.Sentiment)
			if err != nil {
				return nil, nil, err
			}
			node.SetSentiment(s)
		}
		if n.Size != nil {
			if err := node.SetSize(*n.Size); err != nil {
				return nil, nil, err
			}
		}
		nodes = append(nodes, node)
	}

	links := make([]*entities.GraphLink, 0, len(req.Links))
	for _, l := range req.Links {
		link, err := entities.NewGraphLink(l.Source.ID, l.Target.ID)
		if err != nil {
			return nil, nil, err
		}
		if l.Type != "" {
			link.SetType(entities.LinkType(l.Type))
		}
		if l.Sentiment != nil {
			s, err := valueobjects.NewSentiment(*l.Sentiment)
			if err != nil {
				return nil, nil, err
			}
			link.SetSentiment(s)
		}
		if l.Strength != nil {
			link.SetStrength(*l.Strength)
		}
		if l.Value != nil {
			link.SetValue(*l.Value)
		}
		links = append(links, link)
	}

	return nodes, links, nil
}

// ImportGraphRequest asks the service to pull a session graph from the
// analytics backend.
type ImportGraphRequest struct {
	SessionID string `json:"session_id" validate:"required,max=256"`
	Name      string `json:"name" validate:"max=256"`
}

// Validate checks field constraints
func (req *ImportGraphRequest) Validate() error {
	if err := validate.Struct(req); err != nil {
		return pkgerrors.NewValidationError(validationMessage(err))
	}
	return nil
}

// validationMessage flattens a validator error into one line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("field '%s' failed validation on '%s'", fe.Field(), fe.Tag())
	}
	return err.Error()
}
