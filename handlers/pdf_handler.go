package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vinopack/repository"
	"vinopack/utils"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	SavePath string
}

// DispatchPDF handles the API request to generate and save a dispatch-note PDF
func (h *PDFHandler) DispatchPDF(w http.ResponseWriter, r *http.Request) {
	dispatchID := r.URL.Query().Get("id")
	if dispatchID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "missing dispatch id"})
		return
	}

	// Ensure save directory exists
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to create save directory: " + err.Error()})
		return
	}

	// Generate PDF bytes
	pdfBytes, err := utils.GenerateDispatchPDF(h.Repo, dispatchID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to generate PDF: " + err.Error()})
		return
	}
	if len(pdfBytes) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "no dispatch found"})
		return
	}

	// Save PDF to file
	filename := fmt.Sprintf("dispatch_%s_%d.pdf", dispatchID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "failed to save PDF: " + err.Error()})
		return
	}

	// Upload to R2 when configured; the local copy is the fallback.
	pdfPath := filename
	if url, err := utils.UploadToR2(pdfBytes, filename, "application/pdf"); err == nil {
		pdfPath = url
	} else {
		fmt.Printf("failed to upload dispatch PDF %s to R2: %v\n", dispatchID, err)
	}

	// Update pdf info on the note
	if err := h.Repo.DispatchRepo.UpdatePDFInfo(dispatchID, pdfPath, time.Now()); err != nil {
		// Log the error but don't block the response
		fmt.Printf("failed to update pdf info for dispatch %s: %v\n", dispatchID, err)
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "PDF generated", Data: map[string]string{"file": pdfPath}})
}
