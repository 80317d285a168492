package middleware

import (
	"encoding/json"
	"net/http"
)

// writeErr sends the API failure envelope {"success":false,"message":...}.
func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
