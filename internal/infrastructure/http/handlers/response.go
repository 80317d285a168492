package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
)

// Every JSON response carries "success"; failures carry "message" with it.

// writeErr sends {"success":false,"message":...}.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeSuccess sends {"success":true, ...fields}.
func writeSuccess(w http.ResponseWriter, code int, fields map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// userPayload is the public shape of a user: id and email, never the hash.
func userPayload(u *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID.String(),
		"email": u.Email,
	}
}

// taskPayload is the public shape of a task.
func taskPayload(t *domain.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID.String(),
		"ownerId":     t.OwnerID.String(),
		"title":       t.Title,
		"isCompleted": t.IsCompleted,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
}

func taskListPayload(tasks []*domain.Task) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskPayload(t))
	}
	return out
}
