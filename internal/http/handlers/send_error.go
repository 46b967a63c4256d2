package handlers

import (
	"encoding/json"
	"net/http"

	"seo_meta_analyzer/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// statusClientClosedRequest is the non-standard status for a caller that went away.
const statusClientClosedRequest = 499

// ErrorResponse is the body of every failed request. Error holds the error kind,
// never the wrapped chain.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
}

// statusFor maps an error kind to the response status.
func statusFor(err error) int {
	switch errors.KindOf(err) {
	case errors.InvalidInput:
		return http.StatusBadRequest
	case errors.NotFound:
		return http.StatusNotFound
	case errors.Unreachable:
		return http.StatusBadGateway
	case errors.Timeout:
		return http.StatusGatewayTimeout
	case errors.Canceled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError logs the full error chain and answers with the status, user facing
// message and kind taken from err. message is used when err carries none.
func sendError(w http.ResponseWriter, message string, err error) {
	code := statusFor(err)
	kind := errors.KindOf(err)

	fields := log.Fields{
		"error": err,
		"kind":  kind.String(),
		"code":  code,
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			message = appErr.Message
		}
		if appErr.UpstreamStatus != 0 {
			fields["target_status"] = appErr.UpstreamStatus
		}
	}
	log.WithFields(fields).Error(message)

	writeJSON(w, code, ErrorResponse{
		Message: message,
		Error:   kind.String(),
		Code:    code,
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error(`failed to encode response`)
	}
}
