package di

import (
	"time"

	"go.uber.org/zap"

	"insightgraph/application/commands"
	"insightgraph/application/commands/bus"
	commandhandlers "insightgraph/application/commands/handlers"
	"insightgraph/application/ports"
	"insightgraph/application/queries"
	querybus "insightgraph/application/queries/bus"
	queryhandlers "insightgraph/application/queries/handlers"
	"insightgraph/application/services"
	"insightgraph/domain/layout"
	"insightgraph/domain/scene"
	"insightgraph/infrastructure/analytics"
	"insightgraph/infrastructure/config"
	"insightgraph/infrastructure/metrics"
	"insightgraph/infrastructure/persistence/memory"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideGraphRepository creates the snapshot store
func ProvideGraphRepository(logger *zap.Logger) ports.GraphRepository {
	return memory.NewGraphRepository(logger)
}

// ProvideCache creates the layout memoization cache
func ProvideCache() ports.Cache {
	return memory.NewCache()
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *metrics.Metrics {
	return metrics.New()
}

// ProvideLayoutEngine creates the force simulation engine. Config
// fields left at zero fall back to the engine defaults.
func ProvideLayoutEngine(cfg *config.Config) *layout.Engine {
	params := layout.DefaultParams()
	if cfg.LayoutLinkDistance != 0 {
		params.LinkDistance = cfg.LayoutLinkDistance
	}
	if cfg.LayoutLinkStrength != 0 {
		params.LinkStrength = cfg.LayoutLinkStrength
	}
	if cfg.LayoutChargeStrength != 0 {
		params.ChargeStrength = cfg.LayoutChargeStrength
	}
	if cfg.LayoutCollisionRadius != 0 {
		params.CollisionRadius = cfg.LayoutCollisionRadius
	}
	if cfg.LayoutIterations != 0 {
		params.Iterations = cfg.LayoutIterations
	}
	return layout.NewEngine(params)
}

// ProvideLayoutService creates the memoizing layout service
func ProvideLayoutService(engine *layout.Engine, cache ports.Cache, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *services.LayoutService {
	return services.NewLayoutService(engine, cache, cfg.LayoutCacheTTL, m, logger)
}

// ProvideSceneBuilder creates the scene assembler
func ProvideSceneBuilder(cfg *config.Config) *scene.Builder {
	return scene.NewBuilder(cfg.SceneLinkCap, cfg.SceneLabelThreshold)
}

// ProvideAnalyticsSource creates the upstream analytics client
func ProvideAnalyticsSource(cfg *config.Config, logger *zap.Logger) ports.AnalyticsSource {
	timeout := time.Duration(cfg.AnalyticsTimeout) * time.Millisecond
	return analytics.NewClient(cfg.AnalyticsBaseURL, timeout, logger)
}

// ProvideIngestHandler creates the snapshot ingest handler
func ProvideIngestHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *commands.IngestGraphHandler {
	return commands.NewIngestGraphHandler(graphRepo, logger)
}

// ProvideImportHandler creates the analytics import handler
func ProvideImportHandler(analyticsSource ports.AnalyticsSource, ingest *commands.IngestGraphHandler, logger *zap.Logger) *commands.ImportGraphHandler {
	return commands.NewImportGraphHandler(analyticsSource, ingest, logger)
}

// ProvideCommandBus creates a command bus with registered handlers.
// Ingest and import return the created snapshot, so they are invoked
// directly by the HTTP layer; deletion is fire-and-forget and goes
// through the bus with logging middleware.
func ProvideCommandBus(graphRepo ports.GraphRepository, cache ports.Cache, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	pipeline := bus.NewPipeline(bus.LoggingMiddleware(&zapLoggerAdapter{logger.Sugar()}))

	deleteHandler := commandhandlers.NewDeleteGraphBusHandler(
		commands.NewDeleteGraphHandler(graphRepo, cache, logger),
	)
	if err := commandBus.Register(commands.DeleteGraphCommand{}, pipeline.Execute(deleteHandler)); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with every read path registered,
// each wrapped in the metrics middleware.
func ProvideQueryBus(
	graphRepo ports.GraphRepository,
	layoutSvc *services.LayoutService,
	builder *scene.Builder,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	mw := querybus.NewMetricsMiddleware(m)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetSceneQuery{}, queryhandlers.NewBuildSceneHandler(graphRepo, layoutSvc, builder, m, logger)},
		{queries.GetLayoutQuery{}, queryhandlers.NewGetLayoutHandler(graphRepo, layoutSvc)},
		{queries.GetNodeQuery{}, queryhandlers.NewGetNodeHandler(graphRepo, layoutSvc)},
		{queries.GetGraphQuery{}, queryhandlers.NewGetGraphHandler(graphRepo)},
		{queries.ListGraphsQuery{}, queryhandlers.NewListGraphsHandler(graphRepo)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, mw.Wrap(reg.handler)); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// zapLoggerAdapter adapts zap to the command bus logging interface
type zapLoggerAdapter struct {
	sugar *zap.SugaredLogger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.sugar.Infow(msg, keysAndValues...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.sugar.Errorw(msg, keysAndValues...)
}
