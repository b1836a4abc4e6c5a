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

type ReceiptHandler struct {
	Repo  repository.ReceiptRepository
	Audit audit.Recorder
}

// CreateReceipt handler
func (h *ReceiptHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermReceiptsWrite)
	if !ok {
		return
	}

	var receipt models.GoodsReceipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	if receipt.ID == "" {
		receipt.ID = workflow.NewReceiptID()
	}
	receipt.CreatedBy = actor.ID

	// Validation happens before any persistence call; a rejected receipt is
	// never attempted against the store.
	if err := receipt.Normalize(); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.CreateReceipt(&receipt); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to create receipt: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("created receipt %s (%d pallets)", receipt.ID, len(receipt.Pallets)), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Receipt created", Data: receipt})
}

// receiptFilterKeys is the set of query params passed through as filters;
// anything else is ignored rather than reaching the store as a column name.
var receiptFilterKeys = map[string]bool{
	"id":      true,
	"carrier": true,
	"origin":  true,
	"status":  true,
}

// GetAllReceipts handler
func (h *ReceiptHandler) GetAllReceipts(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for key, values := range q {
		if receiptFilterKeys[key] && len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}

	list, err := h.Repo.GetReceipts(filters, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.GoodsReceipt{}
	}

	writeJSON(w, http.StatusOK, list)
}

// GetReceiptByID handler
func (h *ReceiptHandler) GetReceiptByID(w http.ResponseWriter, r *http.Request, id string) {
	list, err := h.Repo.GetReceipts(map[string]interface{}{"id": id}, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if len(list) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Receipt not found"})
		return
	}

	writeJSON(w, http.StatusOK, list[0])
}

// UpdateReceipt handler replaces the header and the full pallet set.
func (h *ReceiptHandler) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermReceiptsWrite)
	if !ok {
		return
	}

	var receipt models.GoodsReceipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}
	if receipt.ID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing receipt id"})
		return
	}

	if err := receipt.Normalize(); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.UpdateReceipt(&receipt); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to update receipt: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("updated receipt %s", receipt.ID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Receipt updated", Data: receipt})
}

// DeleteReceipt handler
func (h *ReceiptHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermReceiptsWrite)
	if !ok {
		return
	}

	receiptID := r.URL.Query().Get("id")
	if receiptID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing receipt id"})
		return
	}

	if err := h.Repo.DeleteReceipt(receiptID); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to delete receipt: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("deleted receipt %s", receiptID), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Receipt deleted successfully"})
}

// RenameLot migrates consumable pallets of a supply from one lot key to a
// real lot name, moving the aggregated quantity without changing totals.
func (h *ReceiptHandler) RenameLot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	actor, ok := requirePermission(w, r, auth.PermReceiptsWrite)
	if !ok {
		return
	}

	var req struct {
		SupplyID string `json:"supply_id"`
		OldLot   string `json:"old_lot"`
		NewLot   string `json:"new_lot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}
	if req.SupplyID == "" || req.NewLot == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "supply_id and new_lot are required"})
		return
	}
	if req.OldLot == "" {
		req.OldLot = models.NoLot
	}

	moved, err := h.Repo.RenameConsumableLot(req.SupplyID, req.OldLot, req.NewLot)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to rename lot: " + err.Error()})
		return
	}

	h.Audit.Record(fmt.Sprintf("renamed lot %q -> %q for supply %s (%d pallets)", req.OldLot, req.NewLot, req.SupplyID, moved), actor.ID, actor.Name)

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("%d pallets moved to lot %q", moved, req.NewLot),
	})
}
