// Package services holds application services that coordinate domain
// logic with the ports.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"insightgraph/application/ports"
	"insightgraph/domain/core/aggregates"
	"insightgraph/domain/layout"
)

// DefaultLayoutTTLSeconds is how long a memoized layout stays cached.
// Snapshots are immutable so the TTL only bounds memory, not staleness.
const DefaultLayoutTTLSeconds = 3600

// LayoutCacheKey is the memoization key for a snapshot's layout.
// Shared with the delete path so eviction and lookup never drift apart.
func LayoutCacheKey(g *aggregates.Graph) string {
	return "layout:" + g.Fingerprint()
}

// LayoutService runs the force simulation and memoizes the result per
// snapshot. The simulation is deterministic and snapshots are immutable,
// so a fingerprint hit can serve the cached positions without any
// recomputation. Concurrent misses for the same snapshot are collapsed
// into a single run.
type LayoutService struct {
	engine  *layout.Engine
	cache   ports.Cache
	ttl     int
	metrics ports.LayoutMetrics
	logger  *zap.Logger
	group   singleflight.Group
}

// NewLayoutService creates the layout service
func NewLayoutService(engine *layout.Engine, cache ports.Cache, ttlSeconds int, metrics ports.LayoutMetrics, logger *zap.Logger) *LayoutService {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultLayoutTTLSeconds
	}
	return &LayoutService{
		engine:  engine,
		cache:   cache,
		ttl:     ttlSeconds,
		metrics: metrics,
		logger:  logger,
	}
}

// Layout returns the positioned nodes for a snapshot, computing the
// simulation at most once per fingerprint while the cache entry lives.
func (s *LayoutService) Layout(ctx context.Context, g *aggregates.Graph) ([]layout.PositionedNode, error) {
	key := LayoutCacheKey(g)

	if positioned, ok := s.cached(ctx, key); ok {
		s.metrics.LayoutCacheHit()
		return positioned, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have populated the cache while this
		// call waited on the flight group.
		if positioned, ok := s.cached(ctx, key); ok {
			return positioned, nil
		}

		start := time.Now()
		positioned := s.engine.Run(g.Nodes(), g.Links())
		elapsed := time.Since(start)
		s.metrics.LayoutComputed(elapsed.Seconds())

		if cacheErr := s.cache.Set(ctx, key, positioned, s.ttl); cacheErr != nil {
			s.logger.Warn("failed to memoize layout",
				zap.String("graphID", g.ID().String()),
				zap.Error(cacheErr),
			)
		}

		s.logger.Info("layout computed",
			zap.String("graphID", g.ID().String()),
			zap.Int("nodes", g.NodeCount()),
			zap.Duration("elapsed", elapsed),
		)
		return positioned, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]layout.PositionedNode), nil
}

func (s *LayoutService) cached(ctx context.Context, key string) ([]layout.PositionedNode, bool) {
	v, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	positioned, ok := v.([]layout.PositionedNode)
	return positioned, ok
}
