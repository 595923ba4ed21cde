package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"insightgraph/application/queries"
	querybus "insightgraph/application/queries/bus"
	"insightgraph/pkg/auth"
	"insightgraph/pkg/common"
)

// NodeHandler serves the node detail view behind a click in the scene
type NodeHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetNode handles GET /graphs/{graphID}/nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetNodeQuery{
		UserID:  userCtx.UserID,
		GraphID: chi.URLParam(r, "graphID"),
		NodeID:  chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
