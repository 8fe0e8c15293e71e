package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sdx/internal/sderr"
	"sdx/pkg/types"
)

// OpenAI error types.
const (
	errTypeInvalidRequest = "invalid_request_error"
	errTypeNotFound       = "not_found_error"
	errTypeServer         = "server_error"
)

const codeModelNotFound = "model_not_found"

// apiError is a fully resolved error response.
type apiError struct {
	status  int
	errType string
	code    string
	message string
}

// statusFor maps a pipeline error to its HTTP response. Messages never carry
// filesystem paths; only sd-cli's own stderr is echoed.
func statusFor(err error) apiError {
	var se *sderr.Error
	if !errors.As(err, &se) {
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "internal error"}
	}
	switch se.Kind {
	case sderr.KindNoDefaultModel:
		return apiError{status: http.StatusBadRequest, errType: errTypeInvalidRequest, message: "no model specified and no models configured"}
	case sderr.KindModelNotFound:
		return apiError{status: http.StatusNotFound, errType: errTypeNotFound, code: codeModelNotFound, message: fmt.Sprintf("model '%s' not found in config", se.Name)}
	case sderr.KindExecutableNotFound:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "sd-cli executable not found"}
	case sderr.KindProcessFailed, sderr.KindProcessKilled:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: se.Error()}
	case sderr.KindOutputReadFailed:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "failed to read output"}
	case sderr.KindConfigNotFound, sderr.KindInvalidConfig:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "server configuration error"}
	case sderr.KindIO:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "internal error"}
	default:
		return apiError{status: http.StatusInternalServerError, errType: errTypeServer, message: "internal error"}
	}
}

// writeJSONError writes the OpenAI-style error envelope.
func writeJSONError(w http.ResponseWriter, status int, errType, code, msg string) {
	body := types.ErrorResponse{Error: types.ErrorBody{Message: msg, Type: errType}}
	if code != "" {
		body.Error.Code = &code
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeAPIError(w http.ResponseWriter, e apiError) {
	writeJSONError(w, e.status, e.errType, e.code, e.message)
}

// invalidRequest writes a 4xx invalid_request_error.
func invalidRequest(w http.ResponseWriter, status int, msg string) {
	writeJSONError(w, status, errTypeInvalidRequest, "", msg)
}
