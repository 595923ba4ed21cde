package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"insightgraph/application/queries"
	querybus "insightgraph/application/queries/bus"
	"insightgraph/domain/scene"
	"insightgraph/infrastructure/render"
	"insightgraph/pkg/auth"
	"insightgraph/pkg/common"
	pkgerrors "insightgraph/pkg/errors"
)

// degradedScene is the textual fallback returned when scene
// construction fails. The panel shows the message instead of a canvas;
// the failure never reaches the client as a panic or a blank page.
type degradedScene struct {
	Degraded bool   `json:"degraded"`
	Message  string `json:"message"`
}

// SceneHandler serves the renderable scene document and its 2D exports
type SceneHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *SceneHandler {
	return &SceneHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetScene handles GET /graphs/{graphID}/scene. The optional ?cap=
// query parameter overrides the rendering link cap for this request.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.buildScene(w, r)
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, sc)
}

// GetSceneSVG handles GET /graphs/{graphID}/scene.svg
func (h *SceneHandler) GetSceneSVG(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.buildScene(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(sc, w); err != nil {
		h.logger.Error("svg export failed", zap.Error(err))
	}
}

// GetScenePNG handles GET /graphs/{graphID}/scene.png
func (h *SceneHandler) GetScenePNG(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.buildScene(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(sc, w); err != nil {
		h.logger.Error("png export failed", zap.Error(err))
	}
}

// buildScene runs the scene query and handles every failure mode,
// reporting whether the caller got a scene to render.
func (h *SceneHandler) buildScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, bool) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "unauthorized")
		return nil, false
	}

	linkCap := 0
	if raw := r.URL.Query().Get("cap"); raw != "" {
		linkCap, err = strconv.Atoi(raw)
		if err != nil || linkCap <= 0 {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "cap must be a positive integer")
			return nil, false
		}
	}

	graphID := chi.URLParam(r, "graphID")
	result, err := h.queryBus.Ask(r.Context(), queries.GetSceneQuery{
		UserID:  userCtx.UserID,
		GraphID: graphID,
		LinkCap: linkCap,
	})
	if err != nil {
		if pkgerrors.IsRender(err) {
			// Degraded textual state instead of a broken render.
			h.logger.Warn("scene degraded to textual fallback",
				zap.String("graphID", graphID),
				zap.Error(err),
			)
			common.RespondJSON(w, http.StatusUnprocessableEntity, degradedScene{
				Degraded: true,
				Message:  "the graph could not be rendered; showing data summary instead",
			})
			return nil, false
		}
		respondAppError(w, err)
		return nil, false
	}

	sc, ok := result.(*scene.Scene)
	if !ok {
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "unexpected scene result")
		return nil, false
	}
	return sc, true
}
