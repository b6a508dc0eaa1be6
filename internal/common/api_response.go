package common

import (
	"encoding/json"
	"net/http"

	"userhub/backend/internal/logging"
	"userhub/backend/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	WriteJSON(w, code, dtos.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError sends a standardized JSON error response. The error text is
// only exposed when exposeErr is set (development).
func RespondError(w http.ResponseWriter, err error, message string, exposeErr bool, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	resp := dtos.APIResponse{
		Success: false,
		Message: message,
	}
	if exposeErr && err != nil {
		resp.Error = err.Error()
	}

	WriteJSON(w, code, resp)
}

// WriteJSON marshals body and writes it to the HTTP response.
func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
