package repository

import (
	"vinopack/models"
)

// PackRepository persists pack models and assembled packs.
//
// CreatePack re-checks availability at write time where the backend can do so
// atomically (Postgres); two concurrent sessions assigning from the same lot
// pool are otherwise only caught afterwards by the inventory aggregation
// reporting a negative available.
type PackRepository interface {
	CreateModel(model *models.PackModel) error
	GetModels() ([]*models.PackModel, error)
	UpdateModel(model *models.PackModel) error
	DeleteModel(modelID string) error

	CreatePack(pack *models.WinePack) error
	GetPacks(filters map[string]interface{}, single bool) ([]*models.WinePack, error)
}
