package repository

import (
	"time"

	"vinopack/models"
)

// DispatchRepository persists dispatch notes and the pack status transition
// they trigger.
//
// CreateDispatch inserts the note and moves every referenced pack from
// Ensamblado to Despachado. The Postgres implementation does both in one
// transaction and rejects when any pack is not Ensamblado anymore; the Mongo
// implementation writes sequentially and removes the note again when the
// status update fails, so no note is left pointing at undispatched packs.
type DispatchRepository interface {
	CreateDispatch(note *models.DispatchNote) error
	GetDispatches(filters map[string]interface{}, single bool) ([]*models.DispatchNote, error)
	UpdatePDFInfo(dispatchID string, path string, createdAt time.Time) error
}
