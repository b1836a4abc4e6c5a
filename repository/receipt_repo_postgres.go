package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vinopack/models"
)

type PostgresReceiptRepo struct {
	DB *sql.DB
}

func NewPostgresReceiptRepo(db *sql.DB) *PostgresReceiptRepo {
	return &PostgresReceiptRepo{DB: db}
}

// ------------------------ Helper Functions ------------------------

// Insert pallets for a receipt
func (r *PostgresReceiptRepo) insertPallets(tx *sql.Tx, receiptID string, pallets []models.ReceiptPallet) error {
	for i := range pallets {
		p := &pallets[i]

		var productName, lot sql.NullString
		var boxes, bottles, totalBottles sql.NullInt64
		if p.Product != nil {
			productName = sql.NullString{String: p.Product.ProductName, Valid: true}
			lot = sql.NullString{String: p.Product.Lot, Valid: true}
			boxes = sql.NullInt64{Int64: p.Product.BoxesPerPallet, Valid: true}
			bottles = sql.NullInt64{Int64: p.Product.BottlesPerBox, Valid: true}
			totalBottles = sql.NullInt64{Int64: p.Product.TotalBottles, Valid: true}
		}

		var supplyID, supplyName, supplyLot sql.NullString
		var quantity sql.NullInt64
		if p.Consumable != nil {
			supplyID = sql.NullString{String: p.Consumable.SupplyID, Valid: true}
			supplyName = sql.NullString{String: p.Consumable.SupplyName, Valid: true}
			supplyLot = sql.NullString{String: p.Consumable.SupplyLot, Valid: true}
			quantity = sql.NullInt64{Int64: p.Consumable.Quantity, Valid: true}
		}

		var incidentDesc sql.NullString
		var incidentPhotos []byte
		if p.Incident != nil {
			incidentDesc = sql.NullString{String: p.Incident.Description, Valid: true}
			var err error
			incidentPhotos, err = json.Marshal(p.Incident.PhotoURLs)
			if err != nil {
				return err
			}
		}

		err := tx.QueryRow(`
			INSERT INTO receipt_pallet(
				receipt_id,pallet_number,kind,
				product_name,lot,boxes_per_pallet,bottles_per_box,total_bottles,
				supply_id,supply_name,supply_lot,quantity,
				incident_description,incident_photos
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			RETURNING id
		`, receiptID, p.PalletNumber, p.Kind,
			productName, lot, boxes, bottles, totalBottles,
			supplyID, supplyName, supplyLot, quantity,
			incidentDesc, incidentPhotos,
		).Scan(&p.ID)
		if err != nil {
			return err
		}
		p.ReceiptID = receiptID
	}
	return nil
}

// Insert receipt header
func (r *PostgresReceiptRepo) insertReceiptMain(tx *sql.Tx, receipt *models.GoodsReceipt) error {
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}
	_, err := tx.Exec(`
		INSERT INTO goods_receipt(
			id,carrier,truck_plate,driver,origin,entry_date,
			general_incident,status,created_by,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, receipt.ID, receipt.Carrier, receipt.TruckPlate, receipt.Driver, receipt.Origin,
		receipt.EntryDate, receipt.GeneralIncident, receipt.Status, receipt.CreatedBy, receipt.CreatedAt)
	return err
}

// ------------------------ Create Receipt ------------------------

// CreateReceipt inserts the header and all pallets in one transaction, so a
// receipt is never half-persisted.
func (r *PostgresReceiptRepo) CreateReceipt(receipt *models.GoodsReceipt) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertReceiptMain(tx, receipt); err != nil {
		return err
	}
	if err := r.insertPallets(tx, receipt.ID, receipt.Pallets); err != nil {
		return err
	}

	return tx.Commit()
}

// ------------------------ Update Receipt ------------------------

// UpdateReceipt rewrites the header and replaces the full pallet set. Edits
// are whole-receipt, not per-pallet patches.
func (r *PostgresReceiptRepo) UpdateReceipt(receipt *models.GoodsReceipt) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE goods_receipt SET
			carrier=$1, truck_plate=$2, driver=$3, origin=$4, entry_date=$5,
			general_incident=$6, status=$7, updated_at=$8
		WHERE id=$9
	`, receipt.Carrier, receipt.TruckPlate, receipt.Driver, receipt.Origin, receipt.EntryDate,
		receipt.GeneralIncident, receipt.Status, time.Now().UTC(), receipt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("receipt %s not found", receipt.ID)
	}

	// Refresh pallets
	if _, err := tx.Exec(`DELETE FROM receipt_pallet WHERE receipt_id=$1`, receipt.ID); err != nil {
		return err
	}
	if err := r.insertPallets(tx, receipt.ID, receipt.Pallets); err != nil {
		return err
	}

	return tx.Commit()
}

// ------------------------ Delete Receipt ------------------------

// DeleteReceipt removes the pallets first, then the header. If the pallet
// delete fails the transaction rolls back and the header survives.
func (r *PostgresReceiptRepo) DeleteReceipt(receiptID string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM receipt_pallet WHERE receipt_id=$1`, receiptID); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM goods_receipt WHERE id=$1`, receiptID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("receipt %s not found", receiptID)
	}

	return tx.Commit()
}

// ------------------------ Get Receipts ------------------------

func (r *PostgresReceiptRepo) GetReceipts(filters map[string]interface{}, single bool) ([]*models.GoodsReceipt, error) {
	query := `
		SELECT id, carrier, truck_plate, driver, origin, entry_date,
		       general_incident, status, created_by, created_at, updated_at
		FROM goods_receipt
	`

	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if !single {
		query += " ORDER BY entry_date DESC"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.GoodsReceipt
	for rows.Next() {
		var g models.GoodsReceipt
		err := rows.Scan(&g.ID, &g.Carrier, &g.TruckPlate, &g.Driver, &g.Origin, &g.EntryDate,
			&g.GeneralIncident, &g.Status, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load all pallets in one go (to avoid N+1)
	if len(result) > 0 {
		ids := make([]interface{}, len(result))
		idStrs := make([]string, len(result))
		for i, g := range result {
			ids[i] = g.ID
			idStrs[i] = fmt.Sprintf("$%d", i+1)
		}
		palletQuery := fmt.Sprintf(`
			SELECT id, receipt_id, pallet_number, kind,
			       product_name, lot, boxes_per_pallet, bottles_per_box, total_bottles,
			       supply_id, supply_name, supply_lot, quantity,
			       incident_description, incident_photos
			FROM receipt_pallet
			WHERE receipt_id IN (%s)
			ORDER BY id
		`, strings.Join(idStrs, ","))
		palletRows, err := r.DB.Query(palletQuery, ids...)
		if err != nil {
			return nil, err
		}
		defer palletRows.Close()

		palletMap := make(map[string][]models.ReceiptPallet)
		for palletRows.Next() {
			p, err := scanPalletRow(palletRows)
			if err != nil {
				return nil, err
			}
			palletMap[p.ReceiptID] = append(palletMap[p.ReceiptID], *p)
		}

		for _, g := range result {
			if pallets, ok := palletMap[g.ID]; ok {
				g.Pallets = pallets
			}
		}
	}

	if single {
		if len(result) > 0 {
			return []*models.GoodsReceipt{result[0]}, nil
		}
		return nil, nil
	}
	return result, nil
}

func scanPalletRow(rows *sql.Rows) (*models.ReceiptPallet, error) {
	var p models.ReceiptPallet
	var productName, lot sql.NullString
	var boxes, bottles, totalBottles sql.NullInt64
	var supplyID, supplyName, supplyLot sql.NullString
	var quantity sql.NullInt64
	var incidentDesc sql.NullString
	var incidentPhotos []byte

	err := rows.Scan(&p.ID, &p.ReceiptID, &p.PalletNumber, &p.Kind,
		&productName, &lot, &boxes, &bottles, &totalBottles,
		&supplyID, &supplyName, &supplyLot, &quantity,
		&incidentDesc, &incidentPhotos)
	if err != nil {
		return nil, err
	}

	switch p.Kind {
	case models.PalletProduct:
		p.Product = &models.ProductPallet{
			ProductName:    productName.String,
			Lot:            lot.String,
			BoxesPerPallet: boxes.Int64,
			BottlesPerBox:  bottles.Int64,
			TotalBottles:   totalBottles.Int64,
		}
	case models.PalletConsumable:
		p.Consumable = &models.ConsumablePallet{
			SupplyID:   supplyID.String,
			SupplyName: supplyName.String,
			SupplyLot:  supplyLot.String,
			Quantity:   quantity.Int64,
		}
	}

	if incidentDesc.Valid && incidentDesc.String != "" {
		p.Incident = &models.Incident{Description: incidentDesc.String}
		if len(incidentPhotos) > 0 {
			if err := json.Unmarshal(incidentPhotos, &p.Incident.PhotoURLs); err != nil {
				return nil, err
			}
		}
	}

	return &p, nil
}

// ------------------------ Rename Consumable Lot ------------------------

// RenameConsumableLot migrates pallets of one supply from oldLot to newLot.
// The "SIN LOTE" sentinel as oldLot matches pallets stored without a lot.
// The aggregated quantity follows the pallets to the new key; totals are
// untouched since no pallet quantity changes.
func (r *PostgresReceiptRepo) RenameConsumableLot(supplyID, oldLot, newLot string) (int64, error) {
	if newLot == "" || newLot == models.NoLot {
		return 0, fmt.Errorf("new lot must be a real lot name")
	}

	var res sql.Result
	var err error
	if oldLot == models.NoLot {
		res, err = r.DB.Exec(`
			UPDATE receipt_pallet
			SET supply_lot=$1
			WHERE kind=$2 AND supply_id=$3 AND (supply_lot='' OR supply_lot IS NULL)
		`, newLot, models.PalletConsumable, supplyID)
	} else {
		res, err = r.DB.Exec(`
			UPDATE receipt_pallet
			SET supply_lot=$1
			WHERE kind=$2 AND supply_id=$3 AND supply_lot=$4
		`, newLot, models.PalletConsumable, supplyID, oldLot)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
