package routes

import (
	"net/http"

	"vinopack/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Actor-Id, X-Actor-Name, X-Actor-Role")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	receiptHandler *handlers.ReceiptHandler,
	supplyHandler *handlers.SupplyHandler,
	modelHandler *handlers.PackModelHandler,
	packHandler *handlers.PackHandler,
	dispatchHandler *handlers.DispatchHandler,
	inventoryHandler *handlers.InventoryHandler,
	profileHandler *handlers.ProfileHandler,
	auditHandler *handlers.AuditHandler,
	pdfHandler *handlers.PDFHandler,
	extractHandler *handlers.ExtractHandler,
) {
	// User routes
	http.Handle("/signup", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Signup))))
	http.Handle("/login", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Login))))

	// Goods receipt routes
	http.Handle("/receipts", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			receiptHandler.CreateReceipt(w, r)
		case http.MethodGet:
			receiptHandler.GetAllReceipts(w, r)
		case http.MethodPut:
			receiptHandler.UpdateReceipt(w, r)
		case http.MethodDelete:
			receiptHandler.DeleteReceipt(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))
	http.Handle("/receipts/lot-rename", withCORS(http.HandlerFunc(handlers.RecoverWrapper(receiptHandler.RenameLot))))

	// Get receipt by ID
	http.Handle("/receipts/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/receipts/"):]
		if id != "" {
			receiptHandler.GetReceiptByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Supply catalog routes
	http.Handle("/supplies", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			supplyHandler.CreateSupply(w, r)
		case http.MethodGet:
			supplyHandler.GetSupplies(w, r)
		case http.MethodPut:
			supplyHandler.UpdateSupply(w, r)
		case http.MethodDelete:
			supplyHandler.DeleteSupply(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Merma routes
	http.Handle("/mermas", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			supplyHandler.CreateMerma(w, r)
		case http.MethodGet:
			supplyHandler.GetMermas(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Pack model routes
	http.Handle("/models", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			modelHandler.CreateModel(w, r)
		case http.MethodGet:
			modelHandler.GetModels(w, r)
		case http.MethodPut:
			modelHandler.UpdateModel(w, r)
		case http.MethodDelete:
			modelHandler.DeleteModel(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Pack routes
	http.Handle("/packs", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			packHandler.AssemblePack(w, r)
		case http.MethodGet:
			packHandler.GetPacks(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Get pack by ID
	http.Handle("/packs/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/packs/"):]
		if id != "" {
			packHandler.GetPackByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Dispatch routes
	http.Handle("/dispatch", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			dispatchHandler.CreateDispatch(w, r)
		case http.MethodGet:
			dispatchHandler.GetAllDispatches(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))
	http.Handle("/dispatch/pdf", withCORS(http.HandlerFunc(handlers.RecoverWrapper(pdfHandler.DispatchPDF))))

	// Get dispatch by ID
	http.Handle("/dispatch/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/dispatch/"):]
		if id != "" {
			dispatchHandler.GetDispatchByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Inventory (derived, read only)
	http.Handle("/inventory", withCORS(http.HandlerFunc(handlers.RecoverWrapper(inventoryHandler.GetInventory))))

	// Warehouse profile routes
	http.Handle("/profile", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			profileHandler.SaveProfile(w, r)
		case http.MethodGet:
			profileHandler.GetProfile(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Audit trail
	http.Handle("/audit", withCORS(http.HandlerFunc(handlers.RecoverWrapper(auditHandler.GetEntries))))

	// Label extraction and incident photos
	http.Handle("/extract", withCORS(http.HandlerFunc(handlers.RecoverWrapper(extractHandler.ExtractLabel))))
	http.Handle("/incident-photo", withCORS(http.HandlerFunc(handlers.RecoverWrapper(extractHandler.UploadIncidentPhoto))))
}
