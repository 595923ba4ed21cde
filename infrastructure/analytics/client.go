// Package analytics is the HTTP client for the upstream analytics
// service that extracts knowledge graphs from focus-group sessions.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"insightgraph/application/ports"
	pkgerrors "insightgraph/pkg/errors"
)

// wire shapes of the analytics graph endpoint
type graphResponse struct {
	SessionID string         `json:"session_id"`
	Name      string         `json:"name"`
	Nodes     []nodeResponse `json:"nodes"`
	Links     []linkResponse `json:"links"`
}

type nodeResponse struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Sentiment *float64 `json:"sentiment,omitempty"`
	Size      *float64 `json:"size,omitempty"`
}

type linkResponse struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Type      string   `json:"type,omitempty"`
	Sentiment *float64 `json:"sentiment,omitempty"`
	Strength  *float64 `json:"strength,omitempty"`
	Value     *float64 `json:"value,omitempty"`
}

// Client implements ports.AnalyticsSource over HTTP. Calls run through
// a circuit breaker so a degraded analytics service cannot pile up
// import requests.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient creates the analytics client. An empty baseURL produces a
// client whose fetches fail cleanly, which is how deployments without
// an analytics upstream run.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "analytics",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("analytics breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// FetchGraph implements ports.AnalyticsSource
func (c *Client) FetchGraph(ctx context.Context, sessionID string) (*ports.GraphPayload, error) {
	if c.baseURL == "" {
		return nil, pkgerrors.NewExternalError("analytics", errors.New("no analytics upstream configured"))
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, sessionID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, pkgerrors.NewExternalError("analytics", err)
		}
		return nil, err
	}
	return result.(*ports.GraphPayload), nil
}

func (c *Client) fetch(ctx context.Context, sessionID string) (*ports.GraphPayload, error) {
	url := fmt.Sprintf("%s/v1/sessions/%s/graph", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.NewExternalError("analytics", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("analytics", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, pkgerrors.NewNotFoundError("session " + sessionID)
	case resp.StatusCode != http.StatusOK:
		return nil, pkgerrors.NewExternalError("analytics", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pkgerrors.NewExternalError("analytics", err)
	}

	payload := &ports.GraphPayload{
		SessionID: body.SessionID,
		Name:      body.Name,
		Nodes:     make([]ports.NodeData, 0, len(body.Nodes)),
		Links:     make([]ports.LinkData, 0, len(body.Links)),
	}
	for _, n := range body.Nodes {
		payload.Nodes = append(payload.Nodes, ports.NodeData{
			ID:        n.ID,
			Type:      n.Type,
			Name:      n.Name,
			Sentiment: n.Sentiment,
			Size:      n.Size,
		})
	}
	for _, l := range body.Links {
		payload.Links = append(payload.Links, ports.LinkData{
			SourceID:  l.Source,
			TargetID:  l.Target,
			Type:      l.Type,
			Sentiment: l.Sentiment,
			Strength:  l.Strength,
			Value:     l.Value,
		})
	}

	c.logger.Debug("fetched session graph",
		zap.String("sessionID", sessionID),
		zap.Int("nodes", len(payload.Nodes)),
		zap.Int("links", len(payload.Links)),
	)
	return payload, nil
}
