package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vinopack/audit"
	"vinopack/auth"
	"vinopack/models"
	"vinopack/repository"
)

type PackModelHandler struct {
	Repo  repository.PackRepository
	Audit audit.Recorder
}

func (h *PackModelHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermModelsWrite)
	if !ok {
		return
	}

	var model models.PackModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	if model.Name == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "name is required"})
		return
	}
	if err := validateModelRequirements(&model); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if model.ID == "" {
		model.ID = fmt.Sprintf("MOD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	}

	if err := h.Repo.CreateModel(&model); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to create pack model: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("created pack model %s (%s)", model.ID, model.Name), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Pack model created", Data: model})
}

func (h *PackModelHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetModels()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.PackModel{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PackModelHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermModelsWrite)
	if !ok {
		return
	}

	var model models.PackModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}
	if model.ID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing model id"})
		return
	}
	if err := validateModelRequirements(&model); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.UpdateModel(&model); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to update pack model: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("updated pack model %s", model.ID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Pack model updated", Data: model})
}

func (h *PackModelHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermModelsWrite)
	if !ok {
		return
	}

	modelID := r.URL.Query().Get("id")
	if modelID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing model id"})
		return
	}

	if err := h.Repo.DeleteModel(modelID); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to delete pack model: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("deleted pack model %s", modelID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Pack model deleted successfully"})
}

func validateModelRequirements(model *models.PackModel) error {
	if len(model.ProductRequirements) == 0 {
		return fmt.Errorf("a pack model needs at least one product requirement")
	}
	for _, req := range model.ProductRequirements {
		if req.ProductName == "" || req.Quantity <= 0 {
			return fmt.Errorf("every product requirement needs a name and a positive quantity")
		}
	}
	for _, req := range model.SupplyRequirements {
		if req.SupplyID == "" || req.Quantity <= 0 {
			return fmt.Errorf("every supply requirement needs a supply id and a positive quantity")
		}
	}
	return nil
}
