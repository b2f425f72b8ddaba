package response

import (
	"encoding/json"
	"net/http"

	"weather-cache/pkg/apperrors"
)

// JSON writes data as a JSON body with the given status.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// OK writes an empty 200 response.
func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// Error renders err. Client errors carry their message as a bare JSON string,
// server errors are reported as {"error": "..."} without internal details.
func Error(w http.ResponseWriter, err error) {
	if err == nil {
		err = apperrors.ErrInternalServer
	}

	appErr := apperrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status < http.StatusInternalServerError {
		JSON(w, status, appErr.Message)
		return
	}
	JSON(w, status, map[string]string{"error": appErr.Message})
}
