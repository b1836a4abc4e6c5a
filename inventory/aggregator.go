// Package inventory derives the stock ledger from the raw event records.
// Nothing here is persisted: the ledger is recomputed from scratch on every
// read, so it cannot drift from its sources.
package inventory

import (
	"fmt"
	"sort"

	"vinopack/models"
)

type ledgerLine struct {
	total   int64
	inPacks int64
	inMerma int64
}

// Aggregate builds one InventoryStockItem per distinct (type, name, lot) key
// from the full sets of receipts, packs and merma records.
//
// total only grows as receipts are added; packs and mermas only move quantity
// into inPacks/inMerma. available = total - inPacks - inMerma and is reported
// as-is even when negative, since a negative value means someone assigned more
// than was available and that must stay visible.
func Aggregate(receipts []models.GoodsReceipt, packs []models.WinePack, mermas []models.MermaRecord) []models.InventoryStockItem {
	ledger := make(map[models.StockKey]*ledgerLine)

	line := func(k models.StockKey) *ledgerLine {
		if l, ok := ledger[k]; ok {
			return l
		}
		l := &ledgerLine{}
		ledger[k] = l
		return l
	}

	for ri := range receipts {
		for pi := range receipts[ri].Pallets {
			p := &receipts[ri].Pallets[pi]
			switch p.Kind {
			case models.PalletProduct:
				if p.Product == nil {
					continue
				}
				k := models.StockKey{Type: models.ItemProducto, Name: p.Product.ProductName, Lot: p.Product.Lot}
				line(k).total += p.Product.TotalBottles
			case models.PalletConsumable:
				if p.Consumable == nil {
					continue
				}
				k := models.StockKey{Type: models.ItemConsumible, Name: p.Consumable.SupplyName, Lot: p.ConsumableLot()}
				line(k).total += p.Consumable.Quantity
			}
		}
	}

	for i := range packs {
		for _, c := range packs[i].Contents {
			k := models.StockKey{Type: models.ItemProducto, Name: c.ProductName, Lot: c.Lot}
			line(k).inPacks += c.Quantity
		}
		for _, s := range packs[i].SuppliesUsed {
			lot := s.Lot
			if lot == "" {
				lot = models.NoLot
			}
			k := models.StockKey{Type: models.ItemConsumible, Name: s.SupplyName, Lot: lot}
			line(k).inPacks += s.Quantity
		}
	}

	for i := range mermas {
		m := &mermas[i]
		lot := m.Lot
		if lot == "" {
			lot = models.NoLot
		}
		k := models.StockKey{Type: m.ItemType, Name: m.Name, Lot: lot}
		line(k).inMerma += m.Quantity
	}

	items := make([]models.InventoryStockItem, 0, len(ledger))
	for k, l := range ledger {
		items = append(items, models.InventoryStockItem{
			Type:      k.Type,
			Name:      k.Name,
			Lot:       k.Lot,
			Total:     l.total,
			Available: l.total - l.inPacks - l.inMerma,
			InPacks:   l.inPacks,
			InMerma:   l.inMerma,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Lot < items[j].Lot
	})
	return items
}

// Anomalies returns one error per ledger line whose available quantity is
// negative. An empty result means conservation holds everywhere.
func Anomalies(items []models.InventoryStockItem) []error {
	var errs []error
	for _, it := range items {
		if it.Available < 0 {
			errs = append(errs, fmt.Errorf(
				"negative stock for %s %q lot %q: total=%d in_packs=%d in_merma=%d available=%d",
				it.Type, it.Name, it.Lot, it.Total, it.InPacks, it.InMerma, it.Available))
		}
	}
	return errs
}

// AvailableByLot extracts the (lot -> available) view for one item, the input
// the lot assignment step works against.
func AvailableByLot(items []models.InventoryStockItem, typ models.ItemType, name string) map[string]int64 {
	out := make(map[string]int64)
	for _, it := range items {
		if it.Type == typ && it.Name == name {
			out[it.Lot] = it.Available
		}
	}
	return out
}

// AvailableBySupply sums available consumable stock across lots, keyed by
// supply name. Used by the assembly check on supply requirements.
func AvailableBySupply(items []models.InventoryStockItem) map[string]int64 {
	out := make(map[string]int64)
	for _, it := range items {
		if it.Type == models.ItemConsumible {
			out[it.Name] += it.Available
		}
	}
	return out
}
