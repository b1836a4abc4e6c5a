package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vinopack/audit"
	"vinopack/auth"
	"vinopack/models"
	"vinopack/repository"
	"vinopack/workflow"
)

type DispatchHandler struct {
	Repo     repository.DispatchRepository
	PackRepo repository.PackRepository
	Audit    audit.Recorder
}

type CreateDispatchRequest struct {
	Customer    string   `json:"customer"`
	Destination string   `json:"destination"`
	Carrier     string   `json:"carrier"`
	TruckPlate  *string  `json:"truck_plate,omitempty"`
	Driver      *string  `json:"driver,omitempty"`
	PackIDs     []string `json:"pack_ids"`
}

// CreateDispatch validates the selection against the current pack statuses,
// builds the note, and persists it together with the pack transition.
func (h *DispatchHandler) CreateDispatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermDispatchWrite)
	if !ok {
		return
	}

	var req CreateDispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	packPtrs, err := h.PackRepo.GetPacks(nil, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	packs := make([]models.WinePack, 0, len(packPtrs))
	for _, p := range packPtrs {
		packs = append(packs, *p)
	}

	note, err := workflow.BuildDispatchNote(req.Customer, req.Destination, req.Carrier,
		req.TruckPlate, req.Driver, req.PackIDs, packs, actor.ID)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.CreateDispatch(note); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to create dispatch: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("dispatched %d packs to %s (%s)", len(note.PackIDs), note.Customer, note.ID), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Dispatch created", Data: note})
}

// GetAllDispatches handler
func (h *DispatchHandler) GetAllDispatches(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetDispatches(nil, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.DispatchNote{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetDispatchByID handler
func (h *DispatchHandler) GetDispatchByID(w http.ResponseWriter, r *http.Request, id string) {
	list, err := h.Repo.GetDispatches(map[string]interface{}{"id": id}, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if len(list) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Dispatch not found"})
		return
	}
	writeJSON(w, http.StatusOK, list[0])
}
