// Package rest wires the HTTP surface of the visualization service.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"insightgraph/application/commands"
	commandbus "insightgraph/application/commands/bus"
	querybus "insightgraph/application/queries/bus"
	"insightgraph/infrastructure/config"
	"insightgraph/infrastructure/metrics"
	"insightgraph/interfaces/http/rest/handlers"
	"insightgraph/interfaces/http/rest/middleware"
)

// Router assembles the HTTP routes over the application layer
type Router struct {
	cfg        *config.Config
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	ingest     *commands.IngestGraphHandler
	importer   *commands.ImportGraphHandler
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewRouter creates a new router
func NewRouter(
	cfg *config.Config,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	ingest *commands.IngestGraphHandler,
	importer *commands.ImportGraphHandler,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		ingest:     ingest,
		importer:   importer,
		metrics:    m,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics && rt.metrics != nil {
		r.Use(rt.metrics.HTTPMiddleware)
	}
	if rt.cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})
	if rt.cfg.EnableMetrics && rt.metrics != nil {
		r.Handle("/metrics", rt.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg, rt.logger))

		graphHandler := handlers.NewGraphHandler(rt.ingest, rt.importer, rt.commandBus, rt.queryBus, rt.logger)
		sceneHandler := handlers.NewSceneHandler(rt.queryBus, rt.logger)
		nodeHandler := handlers.NewNodeHandler(rt.queryBus, rt.logger)

		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", graphHandler.CreateGraph)
			r.Get("/", graphHandler.ListGraphs)
			r.Post("/import", graphHandler.ImportGraph)

			r.Route("/{graphID}", func(r chi.Router) {
				r.Get("/", graphHandler.GetGraph)
				r.Delete("/", graphHandler.DeleteGraph)
				r.Get("/layout", graphHandler.GetLayout)
				r.Get("/scene", sceneHandler.GetScene)
				r.Get("/scene.svg", sceneHandler.GetSceneSVG)
				r.Get("/scene.png", sceneHandler.GetScenePNG)
				r.Get("/nodes/{nodeID}", nodeHandler.GetNode)
			})
		})
	})

	return r
}
