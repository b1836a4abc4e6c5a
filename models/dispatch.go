package models

import "time"

const DispatchCompleted = "completado"

// DispatchNote is an outbound shipment referencing one or more assembled
// packs. Creating one transitions every referenced pack to Despachado.
type DispatchNote struct {
	ID           string     `json:"id" bson:"_id" db:"id"`
	DispatchDate time.Time  `json:"dispatch_date" bson:"dispatch_date" db:"dispatch_date"`
	Customer     string     `json:"customer" bson:"customer" db:"customer"`
	Destination  string     `json:"destination" bson:"destination" db:"destination"`
	Carrier      string     `json:"carrier" bson:"carrier" db:"carrier"`
	TruckPlate   *string    `json:"truck_plate,omitempty" bson:"truck_plate,omitempty" db:"truck_plate"`
	Driver       *string    `json:"driver,omitempty" bson:"driver,omitempty" db:"driver"`
	PackIDs      []string   `json:"pack_ids" bson:"pack_ids"`
	Status       string     `json:"status" bson:"status" db:"status"`
	CreatedBy    int64      `json:"created_by" bson:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	PdfCreatedAt *time.Time `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty" db:"pdf_created_at"`
	PdfPath      *string    `json:"pdf_path,omitempty" bson:"pdf_path,omitempty" db:"pdf_path"`

	// Populated for responses and PDF rendering.
	Packs []WinePack `json:"packs,omitempty" bson:"-"`
}
