package models

import "time"

const (
	PackAssembled  = "Ensamblado"
	PackDispatched = "Despachado"
)

// PackContent is one committed lot line inside an assembled pack.
type PackContent struct {
	ProductName string `json:"product_name" bson:"product_name" db:"product_name"`
	Lot         string `json:"lot" bson:"lot" db:"lot"`
	Quantity    int64  `json:"quantity" bson:"quantity" db:"quantity"`
}

// SupplyUsage is a consumable quantity consumed by an assembled pack.
type SupplyUsage struct {
	SupplyID   string `json:"supply_id" bson:"supply_id" db:"supply_id"`
	SupplyName string `json:"supply_name" bson:"supply_name" db:"supply_name"`
	Lot        string `json:"lot,omitempty" bson:"lot,omitempty" db:"lot"`
	Quantity   int64  `json:"quantity" bson:"quantity" db:"quantity"`
}

// WinePack is an assembled bundle of committed product lots plus consumables.
// Status only ever moves Ensamblado -> Despachado, driven by a dispatch note.
type WinePack struct {
	ID           string        `json:"id" bson:"_id" db:"id"`
	ModelID      string        `json:"model_id" bson:"model_id" db:"model_id"`
	ModelName    string        `json:"model_name" bson:"model_name" db:"model_name"`
	OrderID      string        `json:"order_id" bson:"order_id" db:"order_id"`
	CreationDate time.Time     `json:"creation_date" bson:"creation_date" db:"creation_date"`
	Contents     []PackContent `json:"contents" bson:"contents"`
	SuppliesUsed []SupplyUsage `json:"supplies_used" bson:"supplies_used"`
	Status       string        `json:"status" bson:"status" db:"status"`
	CreatedBy    int64         `json:"created_by" bson:"created_by" db:"created_by"`
}
