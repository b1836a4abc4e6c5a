package repository

import (
	"vinopack/models"
)

// SupplyRepository persists the consumable master records and the merma
// (loss) events that consume stock outside of packs.
type SupplyRepository interface {
	CreateSupply(supply *models.Supply) error
	GetSupplies() ([]*models.Supply, error)
	UpdateSupply(supply *models.Supply) error
	DeleteSupply(supplyID string) error

	CreateMerma(merma *models.MermaRecord) error
	GetMermas() ([]*models.MermaRecord, error)
}
