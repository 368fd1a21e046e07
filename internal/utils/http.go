package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteSuccess writes a success envelope {"success": true, "data", "message"}.
//
// For http.StatusNoContent only the status is written, since a 204 reply
// cannot carry a body.
func WriteSuccess(w http.ResponseWriter, data any, message string, statusCode int) (int, error) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return 0, nil
	}

	return WriteJSON(w, models.Response{
		Success: true,
		Data:    data,
		Message: message,
	}, statusCode)
}

// WriteError writes a failure envelope {"success": false, "error", "details"}.
func WriteError(w http.ResponseWriter, message string, details any, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	}, statusCode)
}
