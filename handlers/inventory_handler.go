package handlers

import (
	"fmt"
	"net/http"

	"vinopack/inventory"
)

type InventoryHandler struct {
	Loader *DatasetLoader
}

// GetInventory recomputes the stock ledger from scratch on every call.
// Negative availability is reported as-is and logged as an anomaly; it means
// something upstream assigned more than was available.
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Loader.LoadAll()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to load stock data: " + err.Error()})
		return
	}

	items := inventory.Aggregate(ds.Receipts, ds.Packs, ds.Mermas)

	for _, anomaly := range inventory.Anomalies(items) {
		fmt.Printf("[WARN] stock anomaly: %v\n", anomaly)
	}

	writeJSON(w, http.StatusOK, items)
}
