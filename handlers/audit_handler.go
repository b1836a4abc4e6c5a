package handlers

import (
	"net/http"
	"strconv"

	"vinopack/auth"
	"vinopack/models"
	"vinopack/repository"
)

type AuditHandler struct {
	Repo repository.AuditRepository
}

// GetEntries returns the most recent audit trail entries, newest first.
func (h *AuditHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePermission(w, r, auth.PermAuditRead); !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.Repo.GetEntries(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, list)
}
