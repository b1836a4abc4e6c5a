package models

import "time"

type ContactEntry struct {
	Number string `json:"number" bson:"number" db:"number"`
	Label  string `json:"label" bson:"label" db:"label"`
}

// WarehouseProfile holds the warehouse identity printed on dispatch-note PDFs.
type WarehouseProfile struct {
	ID          int64          `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyName string         `json:"company_name" bson:"name" db:"name"`
	Address     string         `json:"address" bson:"address" db:"address"`
	City        string         `json:"city" bson:"city" db:"city"`
	Province    string         `json:"province" bson:"province" db:"province"`
	PostalCode  string         `json:"postal_code" bson:"postal_code" db:"postal_code"`
	NIF         string         `json:"nif" bson:"nif" db:"nif"`
	Footnote    string         `json:"footnote" bson:"footnote" db:"footnote"`
	Contacts    []ContactEntry `json:"contacts" bson:"contacts" db:"contacts"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
}
