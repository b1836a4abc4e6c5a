package repository

import (
	"vinopack/models"
)

// ReceiptRepository persists goods receipts with their pallets.
//
// Create and Update write the header and the full pallet set as one logical
// operation: the Postgres implementation runs both in a single transaction,
// the Mongo implementation writes sequentially and deletes the header again
// when the pallet write fails. Delete removes pallets strictly before the
// header; if pallet deletion fails the header must survive.
type ReceiptRepository interface {
	CreateReceipt(receipt *models.GoodsReceipt) error
	GetReceipts(filters map[string]interface{}, single bool) ([]*models.GoodsReceipt, error)
	UpdateReceipt(receipt *models.GoodsReceipt) error
	DeleteReceipt(receiptID string) error

	// RenameConsumableLot moves every consumable pallet of the given supply
	// from oldLot to newLot and returns how many pallets moved. Passing the
	// "SIN LOTE" sentinel as oldLot targets pallets received without a lot.
	RenameConsumableLot(supplyID, oldLot, newLot string) (int64, error)
}
