package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vinopack/models"
)

type PostgresPackRepo struct {
	DB *sql.DB
}

func NewPostgresPackRepo(db *sql.DB) *PostgresPackRepo {
	return &PostgresPackRepo{DB: db}
}

// ------------------------ Pack Models ------------------------

func (r *PostgresPackRepo) CreateModel(model *models.PackModel) error {
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	productJSON, err := json.Marshal(model.ProductRequirements)
	if err != nil {
		return err
	}
	supplyJSON, err := json.Marshal(model.SupplyRequirements)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO pack_model(id,name,description,product_requirements,supply_requirements,created_at)
		VALUES($1,$2,$3,$4,$5,$6)
	`, model.ID, model.Name, model.Description, productJSON, supplyJSON, model.CreatedAt)
	return err
}

func (r *PostgresPackRepo) GetModels() ([]*models.PackModel, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, description, product_requirements, supply_requirements, created_at
		FROM pack_model
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.PackModel
	for rows.Next() {
		var m models.PackModel
		var productJSON, supplyJSON []byte
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &productJSON, &supplyJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(productJSON, &m.ProductRequirements); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(supplyJSON, &m.SupplyRequirements); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

// UpdateModel rewrites the recipe. Packs already assembled from the old
// version keep their snapshot; nothing here touches wine_pack.
func (r *PostgresPackRepo) UpdateModel(model *models.PackModel) error {
	productJSON, err := json.Marshal(model.ProductRequirements)
	if err != nil {
		return err
	}
	supplyJSON, err := json.Marshal(model.SupplyRequirements)
	if err != nil {
		return err
	}
	res, err := r.DB.Exec(`
		UPDATE pack_model SET name=$1, description=$2, product_requirements=$3, supply_requirements=$4
		WHERE id=$5
	`, model.Name, model.Description, productJSON, supplyJSON, model.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pack model %s not found", model.ID)
	}
	return nil
}

func (r *PostgresPackRepo) DeleteModel(modelID string) error {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM wine_pack WHERE model_id=$1`, modelID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("pack model %s is referenced by %d packs and cannot be deleted", modelID, count)
	}
	_, err = r.DB.Exec(`DELETE FROM pack_model WHERE id=$1`, modelID)
	return err
}

// ------------------------ Packs ------------------------

// availableForProduct derives available stock for one (product, lot) key
// inside the given transaction: received bottles minus pack commitments minus
// mermas.
func (r *PostgresPackRepo) availableForProduct(tx *sql.Tx, name, lot string) (int64, error) {
	var total, inPacks, inMerma int64

	err := tx.QueryRow(`
		SELECT COALESCE(SUM(total_bottles),0) FROM receipt_pallet
		WHERE kind=$1 AND product_name=$2 AND lot=$3
	`, models.PalletProduct, name, lot).Scan(&total)
	if err != nil {
		return 0, err
	}

	err = tx.QueryRow(`
		SELECT COALESCE(SUM((c->>'quantity')::bigint),0)
		FROM wine_pack, jsonb_array_elements(contents) AS c
		WHERE c->>'product_name'=$1 AND c->>'lot'=$2
	`, name, lot).Scan(&inPacks)
	if err != nil {
		return 0, err
	}

	err = tx.QueryRow(`
		SELECT COALESCE(SUM(quantity),0) FROM merma
		WHERE item_type=$1 AND name=$2 AND lot=$3
	`, models.ItemProducto, name, lot).Scan(&inMerma)
	if err != nil {
		return 0, err
	}

	return total - inPacks - inMerma, nil
}

// CreatePack inserts an assembled pack after re-deriving availability for
// every committed lot inside the same transaction. Two sessions racing for
// the same lot pool serialize here instead of driving the ledger negative.
func (r *PostgresPackRepo) CreatePack(pack *models.WinePack) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	wanted := make(map[[2]string]int64)
	for _, c := range pack.Contents {
		wanted[[2]string{c.ProductName, c.Lot}] += c.Quantity
	}
	for key, qty := range wanted {
		available, err := r.availableForProduct(tx, key[0], key[1])
		if err != nil {
			return err
		}
		if available < qty {
			return fmt.Errorf("product %q lot %q has %d available, pack needs %d",
				key[0], key[1], available, qty)
		}
	}

	contentsJSON, err := json.Marshal(pack.Contents)
	if err != nil {
		return err
	}
	suppliesJSON, err := json.Marshal(pack.SuppliesUsed)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO wine_pack(id,model_id,model_name,order_id,creation_date,contents,supplies_used,status,created_by)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, pack.ID, pack.ModelID, pack.ModelName, pack.OrderID, pack.CreationDate,
		contentsJSON, suppliesJSON, pack.Status, pack.CreatedBy)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresPackRepo) GetPacks(filters map[string]interface{}, single bool) ([]*models.WinePack, error) {
	query := `
		SELECT id, model_id, model_name, order_id, creation_date, contents, supplies_used, status, created_by
		FROM wine_pack
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
		query += " ORDER BY creation_date DESC"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.WinePack
	for rows.Next() {
		p, err := scanPackRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if single {
		if len(result) > 0 {
			return []*models.WinePack{result[0]}, nil
		}
		return nil, nil
	}
	return result, nil
}

func scanPackRow(rows *sql.Rows) (*models.WinePack, error) {
	var p models.WinePack
	var contentsJSON, suppliesJSON []byte
	err := rows.Scan(&p.ID, &p.ModelID, &p.ModelName, &p.OrderID, &p.CreationDate,
		&contentsJSON, &suppliesJSON, &p.Status, &p.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentsJSON, &p.Contents); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(suppliesJSON, &p.SuppliesUsed); err != nil {
		return nil, err
	}
	return &p, nil
}
