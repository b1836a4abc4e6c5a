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

type SupplyHandler struct {
	Repo  repository.SupplyRepository
	Audit audit.Recorder
}

// CreateSupply handler
func (h *SupplyHandler) CreateSupply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermSuppliesWrite)
	if !ok {
		return
	}

	var supply models.Supply
	if err := json.NewDecoder(r.Body).Decode(&supply); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	if supply.Name == "" || supply.Unit == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "name and unit are required"})
		return
	}
	if supply.Type != models.SupplyContable && supply.Type != models.SupplyNoContable {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "type must be Contable or NoContable"})
		return
	}
	if supply.ID == "" {
		supply.ID = fmt.Sprintf("SUP-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	}

	if err := h.Repo.CreateSupply(&supply); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to create supply: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("created supply %s (%s)", supply.ID, supply.Name), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Supply created", Data: supply})
}

// GetSupplies handler
func (h *SupplyHandler) GetSupplies(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetSupplies()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.Supply{}
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateSupply handler
func (h *SupplyHandler) UpdateSupply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermSuppliesWrite)
	if !ok {
		return
	}

	var supply models.Supply
	if err := json.NewDecoder(r.Body).Decode(&supply); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}
	if supply.ID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing supply id"})
		return
	}

	if err := h.Repo.UpdateSupply(&supply); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to update supply: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("updated supply %s", supply.ID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Supply updated", Data: supply})
}

// DeleteSupply handler
func (h *SupplyHandler) DeleteSupply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermSuppliesWrite)
	if !ok {
		return
	}

	supplyID := r.URL.Query().Get("id")
	if supplyID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing supply id"})
		return
	}

	if err := h.Repo.DeleteSupply(supplyID); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to delete supply: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("deleted supply %s", supplyID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Supply deleted successfully"})
}

// CreateMerma handler records a loss event against a (type, name, lot) key.
func (h *SupplyHandler) CreateMerma(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermSuppliesWrite)
	if !ok {
		return
	}

	var merma models.MermaRecord
	if err := json.NewDecoder(r.Body).Decode(&merma); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	if merma.Name == "" || merma.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "name and a positive quantity are required"})
		return
	}
	if merma.ItemType != models.ItemProducto && merma.ItemType != models.ItemConsumible {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "item_type must be Producto or Consumible"})
		return
	}
	if merma.ID == "" {
		merma.ID = fmt.Sprintf("MER-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	}
	merma.CreatedBy = actor.ID

	if err := h.Repo.CreateMerma(&merma); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to record merma: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("recorded merma %s: %d x %s lot %s", merma.ID, merma.Quantity, merma.Name, merma.Lot), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Merma recorded", Data: merma})
}

// GetMermas handler
func (h *SupplyHandler) GetMermas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetMermas()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.MermaRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}
