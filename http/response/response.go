package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"registration-module/errors"
	"registration-module/logger"
)

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// SendError sends {"error": message} with the given status code
func SendError(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, map[string]string{"error": message})
}

// SendAppError maps an application error Kind to an HTTP status and sends it
func SendAppError(w http.ResponseWriter, err error) {
	var appErr *errors.Error
	message := "Internal server error"
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	SendError(w, statusFromKind(errors.KindOf(err)), message)
}

func statusFromKind(kind errors.Kind) int {
	switch kind {
	case errors.Invalid:
		return http.StatusBadRequest
	case errors.Unauthorized:
		return http.StatusUnauthorized
	case errors.NotFound:
		return http.StatusNotFound
	case errors.Config, errors.Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// SendAttachment sends raw bytes as a downloadable file
func SendAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Error writing attachment: %v", err)
	}
}
