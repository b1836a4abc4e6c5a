package models

// LabelGuess is the field pre-fill returned by the optional label extraction
// service. Values are suggestions only; the operator confirms every field.
type LabelGuess struct {
	ProductName    string `json:"product_name,omitempty"`
	Lot            string `json:"lot,omitempty"`
	BoxesPerPallet int64  `json:"boxes_per_pallet,omitempty"`
	BottlesPerBox  int64  `json:"bottles_per_box,omitempty"`
	SupplyName     string `json:"supply_name,omitempty"`
	Quantity       int64  `json:"quantity,omitempty"`
}
