package api

import (
	"net/http"

	"userhub/backend/internal/common"
	"userhub/backend/internal/constants"
)

// NotFoundHandler answers unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, nil, constants.MsgRouteNotFound, false, http.StatusNotFound)
	}
}
