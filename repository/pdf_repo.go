package repository

import (
	"vinopack/models"
)

// PDFRepository provides methods to fetch data for dispatch-note PDF
// generation.
type PDFRepository struct {
	DispatchRepo DispatchRepository
	ProfileRepo  ProfileRepository
}

func NewPDFRepository(dispatchRepo DispatchRepository, profileRepo ProfileRepository) *PDFRepository {
	return &PDFRepository{
		DispatchRepo: dispatchRepo,
		ProfileRepo:  profileRepo,
	}
}

// GetDispatchForPDF fetches a single dispatch note by ID for PDF.
func (r *PDFRepository) GetDispatchForPDF(id string) (*models.DispatchNote, error) {
	notes, err := r.DispatchRepo.GetDispatches(map[string]interface{}{"id": id}, true)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[0], nil
}

// GetProfileForPDF fetches the warehouse letterhead details.
func (r *PDFRepository) GetProfileForPDF() (*models.WarehouseProfile, error) {
	return r.ProfileRepo.GetProfile()
}
