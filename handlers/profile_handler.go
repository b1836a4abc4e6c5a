package handlers

import (
	"encoding/json"
	"net/http"

	"vinopack/auth"
	"vinopack/models"
	"vinopack/repository"
)

type ProfileHandler struct {
	Repo repository.ProfileRepository
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePermission(w, r, auth.PermProfileWrite); !ok {
		return
	}

	var profile models.WarehouseProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	if err := h.Repo.SaveProfile(&profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Profile saved", Data: profile})
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.GetProfile()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Profile not found"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
