package repository

import (
	"database/sql"
	"fmt"
	"time"

	"vinopack/models"
)

type PostgresSupplyRepo struct {
	DB *sql.DB
}

func NewPostgresSupplyRepo(db *sql.DB) *PostgresSupplyRepo {
	return &PostgresSupplyRepo{DB: db}
}

// ------------------------ Supplies ------------------------

func (r *PostgresSupplyRepo) CreateSupply(supply *models.Supply) error {
	if supply.CreatedAt.IsZero() {
		supply.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Exec(`
		INSERT INTO supply(id,name,type,unit,quantity,min_stock,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7)
	`, supply.ID, supply.Name, supply.Type, supply.Unit, supply.Quantity, supply.MinStock, supply.CreatedAt)
	return err
}

func (r *PostgresSupplyRepo) GetSupplies() ([]*models.Supply, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, type, unit, quantity, min_stock, created_at
		FROM supply
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Supply
	for rows.Next() {
		var s models.Supply
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Unit, &s.Quantity, &s.MinStock, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *PostgresSupplyRepo) UpdateSupply(supply *models.Supply) error {
	res, err := r.DB.Exec(`
		UPDATE supply SET name=$1, type=$2, unit=$3, quantity=$4, min_stock=$5
		WHERE id=$6
	`, supply.Name, supply.Type, supply.Unit, supply.Quantity, supply.MinStock, supply.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("supply %s not found", supply.ID)
	}
	return nil
}

func (r *PostgresSupplyRepo) DeleteSupply(supplyID string) error {
	// A supply referenced by received pallets must stay, or the stock ledger
	// would lose its source rows.
	var count int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM receipt_pallet WHERE kind=$1 AND supply_id=$2
	`, models.PalletConsumable, supplyID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("supply %s has %d received pallets and cannot be deleted", supplyID, count)
	}

	_, err = r.DB.Exec(`DELETE FROM supply WHERE id=$1`, supplyID)
	return err
}

// ------------------------ Mermas ------------------------

func (r *PostgresSupplyRepo) CreateMerma(merma *models.MermaRecord) error {
	if merma.Date.IsZero() {
		merma.Date = time.Now().UTC()
	}
	if merma.Lot == "" {
		merma.Lot = models.NoLot
	}
	_, err := r.DB.Exec(`
		INSERT INTO merma(id,item_type,name,lot,quantity,reason,date,created_by)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8)
	`, merma.ID, merma.ItemType, merma.Name, merma.Lot, merma.Quantity, merma.Reason, merma.Date, merma.CreatedBy)
	return err
}

func (r *PostgresSupplyRepo) GetMermas() ([]*models.MermaRecord, error) {
	rows, err := r.DB.Query(`
		SELECT id, item_type, name, lot, quantity, reason, date, created_by
		FROM merma
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.MermaRecord
	for rows.Next() {
		var m models.MermaRecord
		if err := rows.Scan(&m.ID, &m.ItemType, &m.Name, &m.Lot, &m.Quantity, &m.Reason, &m.Date, &m.CreatedBy); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
