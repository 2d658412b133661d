package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// APIError is the structured error body returned by every handler.
type APIError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	errTypeBadRequest = "bad_request"
	errTypeNotFound   = "not_found"
	errTypeConflict   = "conflict"
	errTypeInternal   = "internal"
)

// writeError writes a structured error response and logs it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	reqID := middleware.GetReqID(r.Context())
	s.logger.Printf("request %s failed (%d %s): %s", reqID, status, errType, message)

	s.writeJSON(w, status, map[string]interface{}{
		"error": APIError{Type: errType, Message: message, RequestID: reqID},
	})
}
