package errors

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse is the envelope every failed request receives.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondNotFound writes a 404 response
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, MsgNotFound)
}

// RespondUnprocessable writes a 422 response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity, MsgUnprocessable)
}

// RespondInternalError writes a 500 response
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternalError)
}

// RespondBadGateway writes a 502 response for failed dependency checks
func RespondBadGateway(w http.ResponseWriter) {
	RespondError(w, http.StatusBadGateway, MsgUpstreamError)
}

// RespondMethodNotAllowed writes a 405 response and advertises the allowed methods.
func RespondMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	RespondError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
