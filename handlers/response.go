package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vinopack/auth"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Actor identifies who is performing a request. Session handling is external;
// the authenticated identity arrives on headers set by the front layer.
type Actor struct {
	ID   int64
	Name string
	Role string
}

func actorFromRequest(r *http.Request) Actor {
	id, _ := strconv.ParseInt(r.Header.Get("X-Actor-Id"), 10, 64)
	return Actor{
		ID:   id,
		Name: r.Header.Get("X-Actor-Name"),
		Role: r.Header.Get("X-Actor-Role"),
	}
}

// requirePermission consults the permission table and writes a 403 when the
// actor's role does not hold the permission. Returns the actor for audit use.
func requirePermission(w http.ResponseWriter, r *http.Request, permission string) (Actor, bool) {
	actor := actorFromRequest(r)
	if !auth.Can(actor.Role, permission) {
		writeJSON(w, http.StatusForbidden, ApiResponse{
			Success: false,
			Message: "permission denied: " + permission,
		})
		return actor, false
	}
	return actor, true
}
