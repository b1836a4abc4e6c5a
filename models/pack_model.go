package models

import "time"

// ProductRequirement is one line of a pack recipe: quantity of bottles of a
// named product, lot decided at assembly time.
type ProductRequirement struct {
	ProductName string `json:"product_name" bson:"product_name" db:"product_name"`
	Quantity    int64  `json:"quantity" bson:"quantity" db:"quantity"`
}

// SupplyRequirement is one consumable line of a pack recipe.
type SupplyRequirement struct {
	SupplyID string `json:"supply_id" bson:"supply_id" db:"supply_id"`
	Quantity int64  `json:"quantity" bson:"quantity" db:"quantity"`
}

// PackModel is a reusable pack recipe. Packs snapshot what they used at
// assembly time, so editing a model never rewrites already-assembled packs.
type PackModel struct {
	ID                  string               `json:"id" bson:"_id" db:"id"`
	Name                string               `json:"name" bson:"name" db:"name"`
	Description         string               `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	ProductRequirements []ProductRequirement `json:"product_requirements" bson:"product_requirements"`
	SupplyRequirements  []SupplyRequirement  `json:"supply_requirements" bson:"supply_requirements"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at" db:"created_at"`
}
