package models

import "fmt"

// NoLot is the grouping key used for consumable stock received without a lot.
const NoLot = "SIN LOTE"

type PalletKind string

const (
	PalletProduct    PalletKind = "producto"
	PalletConsumable PalletKind = "consumible"
)

// ProductPallet holds bottled wine. TotalBottles is always derived from
// BoxesPerPallet*BottlesPerBox, never entered directly.
type ProductPallet struct {
	ProductName    string `json:"product_name" bson:"product_name" db:"product_name"`
	Lot            string `json:"lot" bson:"lot" db:"lot"`
	BoxesPerPallet int64  `json:"boxes_per_pallet" bson:"boxes_per_pallet" db:"boxes_per_pallet"`
	BottlesPerBox  int64  `json:"bottles_per_box" bson:"bottles_per_box" db:"bottles_per_box"`
	TotalBottles   int64  `json:"total_bottles" bson:"total_bottles" db:"total_bottles"`
}

// ConsumablePallet holds packaging supplies (boxes, corks, capsules...).
type ConsumablePallet struct {
	SupplyID   string `json:"supply_id" bson:"supply_id" db:"supply_id"`
	SupplyName string `json:"supply_name" bson:"supply_name" db:"supply_name"`
	SupplyLot  string `json:"supply_lot,omitempty" bson:"supply_lot,omitempty" db:"supply_lot"`
	Quantity   int64  `json:"quantity" bson:"quantity" db:"quantity"`
}

// Incident records a problem found on a pallet at reception.
type Incident struct {
	Description string   `json:"description" bson:"description" db:"description"`
	PhotoURLs   []string `json:"photo_urls,omitempty" bson:"photo_urls,omitempty" db:"photo_urls"`
}

// ReceiptPallet is a tagged variant: exactly one of Product or Consumable is
// set, matching Kind.
type ReceiptPallet struct {
	ID           int64             `json:"id" bson:"id" db:"id"`
	ReceiptID    string            `json:"receipt_id" bson:"receipt_id" db:"receipt_id"`
	PalletNumber string            `json:"pallet_number" bson:"pallet_number" db:"pallet_number"`
	Kind         PalletKind        `json:"kind" bson:"kind" db:"kind"`
	Product      *ProductPallet    `json:"product,omitempty" bson:"product,omitempty"`
	Consumable   *ConsumablePallet `json:"consumable,omitempty" bson:"consumable,omitempty"`
	Incident     *Incident         `json:"incident,omitempty" bson:"incident,omitempty"`
}

// RecomputeTotals re-derives the product bottle count. Called on create and on
// every edit so a stale client value can never stick.
func (p *ReceiptPallet) RecomputeTotals() {
	if p.Kind == PalletProduct && p.Product != nil {
		p.Product.TotalBottles = p.Product.BoxesPerPallet * p.Product.BottlesPerBox
	}
}

// ConsumableLot returns the aggregation lot key for a consumable pallet,
// normalizing an absent lot to the NoLot sentinel.
func (p *ReceiptPallet) ConsumableLot() string {
	if p.Consumable == nil || p.Consumable.SupplyLot == "" {
		return NoLot
	}
	return p.Consumable.SupplyLot
}

// Validate checks the variant is well formed before any persistence attempt.
func (p *ReceiptPallet) Validate() error {
	switch p.Kind {
	case PalletProduct:
		if p.Product == nil {
			return fmt.Errorf("pallet %s: product pallet without product fields", p.PalletNumber)
		}
		if p.Consumable != nil {
			return fmt.Errorf("pallet %s: product pallet carries consumable fields", p.PalletNumber)
		}
		if p.Product.ProductName == "" {
			return fmt.Errorf("pallet %s: product name is required", p.PalletNumber)
		}
		if p.Product.BoxesPerPallet <= 0 || p.Product.BottlesPerBox <= 0 {
			return fmt.Errorf("pallet %s: boxes and bottles per box must be positive", p.PalletNumber)
		}
	case PalletConsumable:
		if p.Consumable == nil {
			return fmt.Errorf("pallet %s: consumable pallet without consumable fields", p.PalletNumber)
		}
		if p.Product != nil {
			return fmt.Errorf("pallet %s: consumable pallet carries product fields", p.PalletNumber)
		}
		if p.Consumable.SupplyID == "" {
			return fmt.Errorf("pallet %s: supply id is required", p.PalletNumber)
		}
		if p.Consumable.Quantity <= 0 {
			return fmt.Errorf("pallet %s: quantity must be positive", p.PalletNumber)
		}
	default:
		return fmt.Errorf("pallet %s: unknown kind %q", p.PalletNumber, p.Kind)
	}
	return nil
}

// DefaultPalletNumber derives a pallet number unique within a receipt from the
// receipt id plus the pallet's group and position. Used when the operator
// leaves the number blank.
func DefaultPalletNumber(receiptID string, groupIdx, palletIdx int) string {
	return fmt.Sprintf("%s-G%d-P%d", receiptID, groupIdx+1, palletIdx+1)
}
