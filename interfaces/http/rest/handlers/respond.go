// Package handlers contains the HTTP request handlers for the REST API.
package handlers

import (
	"net/http"

	"insightgraph/pkg/common"
	pkgerrors "insightgraph/pkg/errors"
)

// respondAppError maps an error from the application layer onto the
// shared response envelope. Unknown errors stay opaque.
func respondAppError(w http.ResponseWriter, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
		return
	}
	common.RespondError(w, http.StatusInternalServerError,
		common.StandardErrorCodes.InternalError, "internal server error")
}
