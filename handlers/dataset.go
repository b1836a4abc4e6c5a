package handlers

import (
	"vinopack/models"
	"vinopack/repository"
)

// DatasetLoader is the single full-reload entry point. Every handler that
// needs the derived stock ledger reloads through it instead of issuing its
// own scattered fetches, so swapping in targeted invalidation later touches
// one place.
type DatasetLoader struct {
	ReceiptRepo repository.ReceiptRepository
	PackRepo    repository.PackRepository
	SupplyRepo  repository.SupplyRepository
}

// Dataset is one consistent-enough snapshot of the event sources feeding the
// inventory aggregation. "Consistent enough" because the store offers no
// multi-entity snapshot; the ledger is recomputed on every read anyway.
type Dataset struct {
	Receipts []models.GoodsReceipt
	Packs    []models.WinePack
	Mermas   []models.MermaRecord
	Supplies []models.Supply
}

func (l *DatasetLoader) LoadAll() (*Dataset, error) {
	receiptPtrs, err := l.ReceiptRepo.GetReceipts(nil, false)
	if err != nil {
		return nil, err
	}
	packPtrs, err := l.PackRepo.GetPacks(nil, false)
	if err != nil {
		return nil, err
	}
	mermaPtrs, err := l.SupplyRepo.GetMermas()
	if err != nil {
		return nil, err
	}
	supplyPtrs, err := l.SupplyRepo.GetSupplies()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for _, r := range receiptPtrs {
		ds.Receipts = append(ds.Receipts, *r)
	}
	for _, p := range packPtrs {
		ds.Packs = append(ds.Packs, *p)
	}
	for _, m := range mermaPtrs {
		ds.Mermas = append(ds.Mermas, *m)
	}
	for _, s := range supplyPtrs {
		ds.Supplies = append(ds.Supplies, *s)
	}
	return ds, nil
}
