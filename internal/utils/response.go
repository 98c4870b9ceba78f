package utils

import (
	"encoding/json"
	"net/http"

	"TRIPMOA_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with a message and the underlying error text
func WriteErrorResponse(w http.ResponseWriter, status int, message, detail string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Error:   message,
		Message: detail,
	})
}

// DecodeJSONRequest decodes the request body into dst and writes a 400 response on failure.
// Callers should return immediately when an error is returned; the response is already written.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
