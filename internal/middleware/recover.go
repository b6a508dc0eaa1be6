package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"userhub/backend/internal/common"
	"userhub/backend/internal/constants"
	"userhub/backend/internal/logging"
)

// Recoverer turns a handler panic into a 500 JSON response. The panic value
// is included in the body only when exposeErr is set. A panic after the
// handler started writing is logged and the partial response left as is.
func Recoverer(exposeErr bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("%v", rec)
				logging.Error("Unhandled panic",
					"request_id", GetRequestID(r.Context()),
					"error", err.Error(),
					"stack", string(debug.Stack()),
					"response_started", wrapped.written,
				)
				// Headers already sent, nothing valid can follow
				if wrapped.written {
					return
				}
				common.RespondError(w, err, constants.MsgInternalServerError, exposeErr, http.StatusInternalServerError)
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
