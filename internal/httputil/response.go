// Package httputil has the JSON response helpers shared by the
// dashboard handlers.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSONOK encodes data as a 200 JSON response.
func WriteJSONOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// WriteJSONError writes an {"error": msg} body with the given status.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already gone, so logging is all that is left.
		log.Printf("failed to encode json response: %v", err)
	}
}
