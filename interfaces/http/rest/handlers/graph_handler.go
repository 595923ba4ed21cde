package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"insightgraph/application/commands"
	commandbus "insightgraph/application/commands/bus"
	"insightgraph/application/queries"
	querybus "insightgraph/application/queries/bus"
	"insightgraph/domain/core/aggregates"
	"insightgraph/interfaces/http/rest/dto"
	"insightgraph/pkg/auth"
	"insightgraph/pkg/common"
	pkgerrors "insightgraph/pkg/errors"
)

// maxIngestBytes bounds an ingest payload. A 10k-node snapshot with
// links fits comfortably.
const maxIngestBytes = 16 << 20

// GraphHandler handles snapshot lifecycle requests
type GraphHandler struct {
	ingest     *commands.IngestGraphHandler
	importer   *commands.ImportGraphHandler
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(
	ingest *commands.IngestGraphHandler,
	importer *commands.ImportGraphHandler,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *GraphHandler {
	return &GraphHandler{
		ingest:     ingest,
		importer:   importer,
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateGraph handles POST /graphs
func (h *GraphHandler) CreateGraph(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	var req dto.CreateGraphRequest
	if err := common.ParseJSONBody(r, &req, maxIngestBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "malformed request body: "+err.Error())
		return
	}

	nodes, links, err := req.ToEntities()
	if err != nil {
		respondAppError(w, err)
		return
	}

	graph, err := h.ingest.Handle(r.Context(), commands.IngestGraphCommand{
		UserID: userCtx.UserID,
		Name:   req.Name,
		Nodes:  nodes,
		Links:  links,
	})
	if err != nil {
		h.logger.Error("graph ingest failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, graphSummary(graph))
}

// ImportGraph handles POST /graphs/import
func (h *GraphHandler) ImportGraph(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	var req dto.ImportGraphRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "malformed request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondAppError(w, err)
		return
	}

	graph, err := h.importer.Handle(r.Context(), commands.ImportGraphCommand{
		UserID:    userCtx.UserID,
		SessionID: req.SessionID,
		Name:      req.Name,
	})
	if err != nil {
		h.logger.Error("graph import failed",
			zap.String("userID", userCtx.UserID),
			zap.String("sessionID", req.SessionID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, graphSummary(graph))
}

// GetGraph handles GET /graphs/{graphID}
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphQuery{
		UserID:  userCtx.UserID,
		GraphID: chi.URLParam(r, "graphID"),
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListGraphs handles GET /graphs
func (h *GraphHandler) ListGraphs(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListGraphsQuery{UserID: userCtx.UserID})
	if err != nil {
		h.logger.Error("graph listing failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetLayout handles GET /graphs/{graphID}/layout
func (h *GraphHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetLayoutQuery{
		UserID:  userCtx.UserID,
		GraphID: chi.URLParam(r, "graphID"),
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteGraph handles DELETE /graphs/{graphID}
func (h *GraphHandler) DeleteGraph(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return
	}

	graphID := chi.URLParam(r, "graphID")
	err = h.commandBus.Send(r.Context(), commands.DeleteGraphCommand{
		GraphID: graphID,
		UserID:  userCtx.UserID,
	})
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			h.logger.Error("graph deletion failed",
				zap.String("graphID", graphID),
				zap.String("userID", userCtx.UserID),
				zap.Error(err),
			)
		}
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// graphSummary builds the snapshot summary returned by the write paths
func graphSummary(g *aggregates.Graph) queries.GetGraphResult {
	return queries.GetGraphResult{
		ID:        g.ID().String(),
		Name:      g.Name(),
		CreatedAt: g.CreatedAt(),
		Stats:     g.ComputeStats(),
	}
}
