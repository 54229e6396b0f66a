// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorResponse is the body written for failed requests. Data carries any
// partial result the operation produced before failing.
type ErrorResponse struct {
	ErrMsg     string `json:"error"`
	ErrKind    string `json:"kind"`
	ErrMsgCode int    `json:"code"`
	Data       any    `json:"data,omitempty"`
}

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc
//
// Usage with chi:
//
//	r.Post("/set_master", http.HandleError(handler.setMaster))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

// DefaultErrorHandler handles errors returned from HTTP handlers
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	WriteError(w, err, nil)
}

// WriteError renders err, attaching data when it is not nil. Tagged errors
// carry their cause in the message; GeneralError stays opaque.
func WriteError(w http.ResponseWriter, err error, data any) {
	var svcErr *apperrors.ServiceError

	resp := &ErrorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrKind:    apperrors.KindGeneral.String(),
		ErrMsgCode: http.StatusInternalServerError,
		Data:       data,
	}
	if errors.As(err, &svcErr) {
		resp.ErrMsg = svcErr.Message
		if svcErr.Kind != apperrors.KindGeneral {
			resp.ErrMsg = svcErr.Error()
		}
		resp.ErrKind = svcErr.Kind.String()
		resp.ErrMsgCode = svcErr.StatusCode()
	}

	WriteJSON(w, resp.ErrMsgCode, resp)
}

// WriteJSON writes data as a JSON response with status
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
