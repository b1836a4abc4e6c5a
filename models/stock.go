package models

type ItemType string

const (
	ItemProducto   ItemType = "Producto"
	ItemConsumible ItemType = "Consumible"
)

// StockKey identifies one line of the derived stock ledger.
type StockKey struct {
	Type ItemType
	Name string
	Lot  string
}

// InventoryStockItem is derived on every read from receipts, packs and mermas;
// it is never stored. Available can go negative when upstream data is broken
// (over-assignment); callers must surface that, not clamp it.
type InventoryStockItem struct {
	Type      ItemType `json:"type"`
	Name      string   `json:"name"`
	Lot       string   `json:"lot"`
	Total     int64    `json:"total"`
	Available int64    `json:"available"`
	InPacks   int64    `json:"in_packs"`
	InMerma   int64    `json:"in_merma"`
}

func (s InventoryStockItem) Key() StockKey {
	return StockKey{Type: s.Type, Name: s.Name, Lot: s.Lot}
}
