// Package di wires the application's dependencies with google/wire.
package di

import (
	"go.uber.org/zap"

	"insightgraph/application/commands"
	"insightgraph/application/commands/bus"
	"insightgraph/application/ports"
	querybus "insightgraph/application/queries/bus"
	"insightgraph/application/services"
	"insightgraph/domain/scene"
	"insightgraph/infrastructure/config"
	"insightgraph/infrastructure/metrics"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	GraphRepo     ports.GraphRepository
	Cache         ports.Cache
	Metrics       *metrics.Metrics
	LayoutService *services.LayoutService
	SceneBuilder  *scene.Builder
	Analytics     ports.AnalyticsSource
	IngestHandler *commands.IngestGraphHandler
	ImportHandler *commands.ImportGraphHandler
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
}
