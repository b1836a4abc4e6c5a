package models

import (
	"fmt"
	"time"
)

const (
	ReceiptVerified = "verificado"
	ReceiptIncident = "incidencia"
)

// GoodsReceipt is an inbound delivery (albarán): truck header plus the ordered
// pallets unloaded from it.
type GoodsReceipt struct {
	ID              string     `json:"id" bson:"_id" db:"id"`
	Carrier         string     `json:"carrier" bson:"carrier" db:"carrier"`
	TruckPlate      string     `json:"truck_plate" bson:"truck_plate" db:"truck_plate"`
	Driver          string     `json:"driver" bson:"driver" db:"driver"`
	Origin          string     `json:"origin" bson:"origin" db:"origin"`
	EntryDate       time.Time  `json:"entry_date" bson:"entry_date" db:"entry_date"`
	GeneralIncident string     `json:"general_incident,omitempty" bson:"general_incident,omitempty" db:"general_incident"`
	Status          string     `json:"status" bson:"status" db:"status"`
	CreatedBy       int64      `json:"created_by" bson:"created_by" db:"created_by"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`

	Pallets []ReceiptPallet `json:"pallets" bson:"pallets"`
}

// DeriveStatus sets the receipt status from the presence of incidents, general
// or per pallet.
func (g *GoodsReceipt) DeriveStatus() {
	g.Status = ReceiptVerified
	if g.GeneralIncident != "" {
		g.Status = ReceiptIncident
		return
	}
	for i := range g.Pallets {
		if g.Pallets[i].Incident != nil && g.Pallets[i].Incident.Description != "" {
			g.Status = ReceiptIncident
			return
		}
	}
}

// Normalize recomputes derived pallet fields, fills blank pallet numbers and
// rejects duplicates. Group boundaries follow consecutive runs of the same
// product/supply so numbering matches the label sheets printed per group.
func (g *GoodsReceipt) Normalize() error {
	seen := make(map[string]bool, len(g.Pallets))
	groupIdx := -1
	palletIdx := 0
	lastGroupKey := ""
	for i := range g.Pallets {
		p := &g.Pallets[i]
		p.ReceiptID = g.ID
		p.RecomputeTotals()

		key := string(p.Kind)
		if p.Product != nil {
			key += "/" + p.Product.ProductName + "/" + p.Product.Lot
		}
		if p.Consumable != nil {
			key += "/" + p.Consumable.SupplyID + "/" + p.Consumable.SupplyLot
		}
		if key != lastGroupKey {
			groupIdx++
			palletIdx = 0
			lastGroupKey = key
		}
		if p.PalletNumber == "" {
			p.PalletNumber = DefaultPalletNumber(g.ID, groupIdx, palletIdx)
		}
		palletIdx++

		if seen[p.PalletNumber] {
			return fmt.Errorf("duplicate pallet number %q in receipt %s", p.PalletNumber, g.ID)
		}
		seen[p.PalletNumber] = true

		if err := p.Validate(); err != nil {
			return err
		}
	}
	g.DeriveStatus()
	return nil
}
