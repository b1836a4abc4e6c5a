package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinopack/models"
)

func receiptWithProduct(name, lot string, bottles int64) models.GoodsReceipt {
	return models.GoodsReceipt{
		Pallets: []models.ReceiptPallet{{
			Kind: models.PalletProduct,
			Product: &models.ProductPallet{
				ProductName:  name,
				Lot:          lot,
				TotalBottles: bottles,
			},
		}},
	}
}

func receiptWithConsumable(supplyName, lot string, qty int64) models.GoodsReceipt {
	return models.GoodsReceipt{
		Pallets: []models.ReceiptPallet{{
			Kind: models.PalletConsumable,
			Consumable: &models.ConsumablePallet{
				SupplyID:   "SUP-1",
				SupplyName: supplyName,
				SupplyLot:  lot,
				Quantity:   qty,
			},
		}},
	}
}

func findItem(t *testing.T, items []models.InventoryStockItem, typ models.ItemType, name, lot string) models.InventoryStockItem {
	t.Helper()
	for _, it := range items {
		if it.Type == typ && it.Name == name && it.Lot == lot {
			return it
		}
	}
	t.Fatalf("no ledger line for %s %q lot %q", typ, name, lot)
	return models.InventoryStockItem{}
}

func TestAggregateSumsReceiptsPerKey(t *testing.T) {
	receipts := []models.GoodsReceipt{
		receiptWithProduct("Rioja", "L1", 336),
		receiptWithProduct("Rioja", "L1", 336),
		receiptWithProduct("Rioja", "L2", 600),
	}

	items := Aggregate(receipts, nil, nil)

	require.Len(t, items, 2)
	l1 := findItem(t, items, models.ItemProducto, "Rioja", "L1")
	assert.Equal(t, int64(672), l1.Total)
	assert.Equal(t, int64(672), l1.Available)
	l2 := findItem(t, items, models.ItemProducto, "Rioja", "L2")
	assert.Equal(t, int64(600), l2.Total)
}

func TestAggregateSubtractsPacksAndMermas(t *testing.T) {
	receipts := []models.GoodsReceipt{receiptWithProduct("Rioja", "L1", 1000)}
	packs := []models.WinePack{{
		Status:   models.PackAssembled,
		Contents: []models.PackContent{{ProductName: "Rioja", Lot: "L1", Quantity: 300}},
	}}
	mermas := []models.MermaRecord{{
		ItemType: models.ItemProducto, Name: "Rioja", Lot: "L1", Quantity: 50,
	}}

	items := Aggregate(receipts, packs, mermas)

	it := findItem(t, items, models.ItemProducto, "Rioja", "L1")
	assert.Equal(t, int64(1000), it.Total)
	assert.Equal(t, int64(300), it.InPacks)
	assert.Equal(t, int64(50), it.InMerma)
	assert.Equal(t, int64(650), it.Available)
}

func TestAggregateDispatchedPacksStillConsumeStock(t *testing.T) {
	receipts := []models.GoodsReceipt{receiptWithProduct("Rioja", "L1", 500)}
	packs := []models.WinePack{{
		Status:   models.PackDispatched,
		Contents: []models.PackContent{{ProductName: "Rioja", Lot: "L1", Quantity: 200}},
	}}

	items := Aggregate(receipts, packs, nil)

	it := findItem(t, items, models.ItemProducto, "Rioja", "L1")
	assert.Equal(t, int64(200), it.InPacks)
	assert.Equal(t, int64(300), it.Available)
}

func TestAggregateNormalizesMissingConsumableLot(t *testing.T) {
	receipts := []models.GoodsReceipt{
		receiptWithConsumable("Caja 6", "", 500),
		receiptWithConsumable("Caja 6", "", 250),
	}
	packs := []models.WinePack{{
		SuppliesUsed: []models.SupplyUsage{{SupplyName: "Caja 6", Lot: "", Quantity: 100}},
	}}
	mermas := []models.MermaRecord{{
		ItemType: models.ItemConsumible, Name: "Caja 6", Lot: "", Quantity: 20,
	}}

	items := Aggregate(receipts, packs, mermas)

	// everything lands on the one SIN LOTE line
	require.Len(t, items, 1)
	it := findItem(t, items, models.ItemConsumible, "Caja 6", models.NoLot)
	assert.Equal(t, int64(750), it.Total)
	assert.Equal(t, int64(630), it.Available)
}

func TestAggregateReportsNegativeAvailable(t *testing.T) {
	receipts := []models.GoodsReceipt{receiptWithProduct("Rioja", "L1", 100)}
	packs := []models.WinePack{{
		Contents: []models.PackContent{{ProductName: "Rioja", Lot: "L1", Quantity: 150}},
	}}

	items := Aggregate(receipts, packs, nil)

	it := findItem(t, items, models.ItemProducto, "Rioja", "L1")
	assert.Equal(t, int64(-50), it.Available, "negative availability must be surfaced, not clamped")

	errs := Anomalies(items)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "negative stock")
}

func TestAggregateIsDeterministic(t *testing.T) {
	receipts := []models.GoodsReceipt{
		receiptWithProduct("Rioja", "L2", 10),
		receiptWithProduct("Albariño", "L1", 20),
		receiptWithConsumable("Caja 6", "C1", 30),
	}

	first := Aggregate(receipts, nil, nil)
	second := Aggregate(receipts, nil, nil)

	assert.Equal(t, first, second)

	// sorted by type, name, lot
	require.Len(t, first, 3)
	assert.Equal(t, models.ItemConsumible, first[0].Type)
	assert.Equal(t, "Albariño", first[1].Name)
	assert.Equal(t, "Rioja", first[2].Name)
}

func TestAvailableByLot(t *testing.T) {
	items := []models.InventoryStockItem{
		{Type: models.ItemProducto, Name: "Rioja", Lot: "L1", Available: 100},
		{Type: models.ItemProducto, Name: "Rioja", Lot: "L2", Available: 40},
		{Type: models.ItemProducto, Name: "Albariño", Lot: "L1", Available: 999},
		{Type: models.ItemConsumible, Name: "Rioja", Lot: "L1", Available: 5},
	}

	got := AvailableByLot(items, models.ItemProducto, "Rioja")

	assert.Equal(t, map[string]int64{"L1": 100, "L2": 40}, got)
}

func TestAvailableBySupplySumsAcrossLots(t *testing.T) {
	items := []models.InventoryStockItem{
		{Type: models.ItemConsumible, Name: "Caja 6", Lot: "C1", Available: 100},
		{Type: models.ItemConsumible, Name: "Caja 6", Lot: models.NoLot, Available: 50},
		{Type: models.ItemConsumible, Name: "Corcho", Lot: models.NoLot, Available: 2000},
		{Type: models.ItemProducto, Name: "Rioja", Lot: "L1", Available: 300},
	}

	got := AvailableBySupply(items)

	assert.Equal(t, map[string]int64{"Caja 6": 150, "Corcho": 2000}, got)
}
