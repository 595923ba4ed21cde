// Package handlers adapts typed command handlers onto the command bus.
package handlers

import (
	"context"

	"insightgraph/application/commands"
	"insightgraph/application/commands/bus"
	pkgerrors "insightgraph/pkg/errors"
)

// DeleteGraphBusHandler adapts DeleteGraphHandler to the command bus
type DeleteGraphBusHandler struct {
	handler *commands.DeleteGraphHandler
}

// NewDeleteGraphBusHandler creates the adapter
func NewDeleteGraphBusHandler(handler *commands.DeleteGraphHandler) *DeleteGraphBusHandler {
	return &DeleteGraphBusHandler{handler: handler}
}

// Handle implements bus.CommandHandler
func (h *DeleteGraphBusHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.DeleteGraphCommand)
	if !ok {
		return pkgerrors.NewInternalError("invalid command type for DeleteGraphBusHandler")
	}
	return h.handler.Handle(ctx, c)
}
