package models

import "time"

const (
	SupplyContable   = "Contable"
	SupplyNoContable = "NoContable"
)

// Supply is the master record of a consumable (boxes, corks, capsules...).
// Quantity is a legacy denormalized total kept for display only; available
// stock always comes from the inventory aggregation.
type Supply struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Type      string    `json:"type" bson:"type" db:"type"`
	Unit      string    `json:"unit" bson:"unit" db:"unit"`
	Quantity  int64     `json:"quantity" bson:"quantity" db:"quantity"`
	MinStock  *int64    `json:"min_stock,omitempty" bson:"min_stock,omitempty" db:"min_stock"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// MermaRecord is a loss/waste event consuming stock outside of any pack.
type MermaRecord struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	ItemType  ItemType  `json:"item_type" bson:"item_type" db:"item_type"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Lot       string    `json:"lot" bson:"lot" db:"lot"`
	Quantity  int64     `json:"quantity" bson:"quantity" db:"quantity"`
	Reason    string    `json:"reason" bson:"reason" db:"reason"`
	Date      time.Time `json:"date" bson:"date" db:"date"`
	CreatedBy int64     `json:"created_by" bson:"created_by" db:"created_by"`
}
