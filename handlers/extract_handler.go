package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"vinopack/utils"
)

// ExtractHandler exposes the optional pallet-label extraction service. The
// response is a pre-fill suggestion only; nothing is persisted here and the
// operator confirms every field before the pallet is saved.
type ExtractHandler struct {
	Client *utils.LabelExtractClient
}

func (h *ExtractHandler) ExtractLabel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if h.Client == nil || !h.Client.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{Success: false, Message: "label extraction is not configured"})
		return
	}

	// 10 MB cap on label photos
	image, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "failed to read image: " + err.Error()})
		return
	}
	if len(image) == 0 {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "empty image"})
		return
	}

	guess, err := h.Client.Extract(r.Context(), image, r.Header.Get("Content-Type"))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, ApiResponse{Success: false, Message: "extraction failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Suggested fields (confirm before saving)", Data: guess})
}

// UploadIncidentPhoto stores an incident photo and returns its URL for the
// pallet's incident record.
func (h *ExtractHandler) UploadIncidentPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	photo, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "failed to read photo: " + err.Error()})
		return
	}
	if len(photo) == 0 {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "empty photo"})
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "photo.jpg"
	}
	filename := fmt.Sprintf("incident_%d_%s", time.Now().Unix(), name)
	url, err := utils.UploadToR2(photo, filename, contentType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "upload failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Photo uploaded", Data: map[string]string{"url": url}})
}
