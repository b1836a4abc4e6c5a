package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vinopack/audit"
	"vinopack/auth"
	"vinopack/inventory"
	"vinopack/models"
	"vinopack/repository"
	"vinopack/workflow"
)

type PackHandler struct {
	Repo   repository.PackRepository
	Loader *DatasetLoader
	Audit  audit.Recorder
}

// AssemblePackRequest is the full assembly proposal: the model to build, the
// order it is for, and the lot partition per required product.
type AssemblePackRequest struct {
	ModelID     string                              `json:"model_id"`
	OrderID     string                              `json:"order_id"`
	Assignments map[string][]workflow.LotAssignment `json:"assignments"`
}

// AssemblePack runs the assembly workflow against a fresh stock aggregation
// and persists the emitted pack. Validation failures come back as 422 with
// the in-progress proposal untouched on the client side.
func (h *PackHandler) AssemblePack(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePermission(w, r, auth.PermPacksWrite)
	if !ok {
		return
	}

	var req AssemblePackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	ds, err := h.Loader.LoadAll()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to load stock data: " + err.Error()})
		return
	}

	modelPtrs, err := h.Repo.GetModels()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	var model *models.PackModel
	for _, m := range modelPtrs {
		if m.ID == req.ModelID {
			model = m
			break
		}
	}
	if model == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: fmt.Sprintf("pack model %q not found", req.ModelID)})
		return
	}

	items := inventory.Aggregate(ds.Receipts, ds.Packs, ds.Mermas)

	assembly := workflow.NewAssembly()
	assembly.SelectModel(*model, ds.Supplies)
	assembly.SetOrderID(req.OrderID)

	for _, prodReq := range model.ProductRequirements {
		proposal := req.Assignments[prodReq.ProductName]
		availableByLot := inventory.AvailableByLot(items, models.ItemProducto, prodReq.ProductName)
		if err := assembly.AssignLots(prodReq.ProductName, proposal, availableByLot); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{
				Success: false,
				Message: fmt.Sprintf("assignment for %q rejected: %v", prodReq.ProductName, err),
			})
			return
		}
	}

	pack, err := assembly.Finalize(inventory.AvailableBySupply(items), actor.ID)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.CreatePack(pack); err != nil {
		// Assembly state is the client's proposal; nothing is lost, they can
		// resubmit as-is.
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed to persist pack: " + err.Error()})
		return
	}
	assembly.Reset()

	h.Audit.Record(fmt.Sprintf("assembled pack %s from model %s for order %s", pack.ID, pack.ModelID, pack.OrderID), actor.ID, actor.Name)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Pack assembled", Data: pack})
}

// GetPacks handler; ?status=Ensamblado filters, ?selectable=true returns only
// packs a dispatch may reference.
func (h *PackHandler) GetPacks(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	if status := r.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}

	list, err := h.Repo.GetPacks(filters, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if r.URL.Query().Get("selectable") == "true" {
		packs := make([]models.WinePack, 0, len(list))
		for _, p := range list {
			packs = append(packs, *p)
		}
		writeJSON(w, http.StatusOK, workflow.SelectablePacks(packs))
		return
	}

	if list == nil {
		list = []*models.WinePack{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetPackByID handler
func (h *PackHandler) GetPackByID(w http.ResponseWriter, r *http.Request, id string) {
	list, err := h.Repo.GetPacks(map[string]interface{}{"id": id}, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if len(list) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Pack not found"})
		return
	}
	writeJSON(w, http.StatusOK, list[0])
}
