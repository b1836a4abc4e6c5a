package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productPallet(name, lot string, boxes, perBox int64) ReceiptPallet {
	return ReceiptPallet{
		Kind: PalletProduct,
		Product: &ProductPallet{
			ProductName:    name,
			Lot:            lot,
			BoxesPerPallet: boxes,
			BottlesPerBox:  perBox,
		},
	}
}

func consumablePallet(supplyID, supplyName, lot string, qty int64) ReceiptPallet {
	return ReceiptPallet{
		Kind: PalletConsumable,
		Consumable: &ConsumablePallet{
			SupplyID:   supplyID,
			SupplyName: supplyName,
			SupplyLot:  lot,
			Quantity:   qty,
		},
	}
}

func TestRecomputeTotalsOverridesClientValue(t *testing.T) {
	p := productPallet("Rioja Crianza", "L-2024-01", 56, 6)
	p.Product.TotalBottles = 999 // stale client value

	p.RecomputeTotals()

	assert.Equal(t, int64(336), p.Product.TotalBottles)
}

func TestConsumableLotFallsBackToSentinel(t *testing.T) {
	withLot := consumablePallet("SUP-1", "Caja 6", "C-77", 100)
	withoutLot := consumablePallet("SUP-1", "Caja 6", "", 100)

	assert.Equal(t, "C-77", withLot.ConsumableLot())
	assert.Equal(t, NoLot, withoutLot.ConsumableLot())
}

func TestPalletValidate(t *testing.T) {
	mixed := productPallet("Rioja", "L1", 10, 6)
	mixed.Consumable = &ConsumablePallet{SupplyID: "SUP-1", Quantity: 1}

	tests := []struct {
		name    string
		pallet  ReceiptPallet
		wantErr bool
	}{
		{name: "valid product", pallet: productPallet("Rioja", "L1", 10, 6)},
		{name: "valid consumable", pallet: consumablePallet("SUP-1", "Caja", "", 50)},
		{name: "product without fields", pallet: ReceiptPallet{Kind: PalletProduct}, wantErr: true},
		{name: "product with consumable fields", pallet: mixed, wantErr: true},
		{name: "product without name", pallet: productPallet("", "L1", 10, 6), wantErr: true},
		{name: "zero boxes", pallet: productPallet("Rioja", "L1", 0, 6), wantErr: true},
		{name: "consumable without supply id", pallet: consumablePallet("", "Caja", "", 50), wantErr: true},
		{name: "consumable with zero quantity", pallet: consumablePallet("SUP-1", "Caja", "", 0), wantErr: true},
		{name: "unknown kind", pallet: ReceiptPallet{Kind: "palet"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pallet.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeNumbersConsecutiveGroups(t *testing.T) {
	r := GoodsReceipt{
		ID: "REC-1",
		Pallets: []ReceiptPallet{
			productPallet("Rioja", "L1", 10, 6),
			productPallet("Rioja", "L1", 10, 6),
			productPallet("Albariño", "L2", 8, 12),
			consumablePallet("SUP-1", "Caja 6", "", 200),
		},
	}

	require.NoError(t, r.Normalize())

	assert.Equal(t, "REC-1-G1-P1", r.Pallets[0].PalletNumber)
	assert.Equal(t, "REC-1-G1-P2", r.Pallets[1].PalletNumber)
	assert.Equal(t, "REC-1-G2-P1", r.Pallets[2].PalletNumber)
	assert.Equal(t, "REC-1-G3-P1", r.Pallets[3].PalletNumber)

	// derived fields filled in along the way
	assert.Equal(t, int64(60), r.Pallets[0].Product.TotalBottles)
	assert.Equal(t, "REC-1", r.Pallets[0].ReceiptID)
}

func TestNormalizeKeepsOperatorNumbers(t *testing.T) {
	p := productPallet("Rioja", "L1", 10, 6)
	p.PalletNumber = "CUSTOM-7"
	r := GoodsReceipt{ID: "REC-1", Pallets: []ReceiptPallet{p}}

	require.NoError(t, r.Normalize())

	assert.Equal(t, "CUSTOM-7", r.Pallets[0].PalletNumber)
}

func TestNormalizeRejectsDuplicateNumbers(t *testing.T) {
	p1 := productPallet("Rioja", "L1", 10, 6)
	p1.PalletNumber = "P-1"
	p2 := productPallet("Albariño", "L2", 8, 12)
	p2.PalletNumber = "P-1"
	r := GoodsReceipt{ID: "REC-1", Pallets: []ReceiptPallet{p1, p2}}

	err := r.Normalize()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pallet number")
}

func TestDeriveStatus(t *testing.T) {
	damaged := productPallet("Rioja", "L1", 10, 6)
	damaged.Incident = &Incident{Description: "cajas mojadas"}

	tests := []struct {
		name    string
		receipt GoodsReceipt
		want    string
	}{
		{
			name:    "clean receipt",
			receipt: GoodsReceipt{Pallets: []ReceiptPallet{productPallet("Rioja", "L1", 10, 6)}},
			want:    ReceiptVerified,
		},
		{
			name:    "general incident",
			receipt: GoodsReceipt{GeneralIncident: "camión retrasado", Pallets: []ReceiptPallet{productPallet("Rioja", "L1", 10, 6)}},
			want:    ReceiptIncident,
		},
		{
			name:    "pallet incident",
			receipt: GoodsReceipt{Pallets: []ReceiptPallet{damaged}},
			want:    ReceiptIncident,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.receipt.DeriveStatus()
			assert.Equal(t, tt.want, tt.receipt.Status)
		})
	}
}
