package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"vinopack/models"
)

type PostgresDispatchRepo struct {
	DB *sql.DB
}

func NewPostgresDispatchRepo(db *sql.DB) *PostgresDispatchRepo {
	return &PostgresDispatchRepo{DB: db}
}

// ------------------------ Create Dispatch ------------------------

// CreateDispatch inserts the note and transitions every referenced pack from
// Ensamblado to Despachado in one transaction. If any pack has already moved
// on (another session dispatched it first), the whole operation rolls back.
func (r *PostgresDispatchRepo) CreateDispatch(note *models.DispatchNote) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	packIDsJSON, err := json.Marshal(note.PackIDs)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO dispatch_note(
			id,dispatch_date,customer,destination,carrier,truck_plate,driver,
			pack_ids,status,created_by,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, note.ID, note.DispatchDate, note.Customer, note.Destination, note.Carrier,
		note.TruckPlate, note.Driver, packIDsJSON, note.Status, note.CreatedBy, note.CreatedAt)
	if err != nil {
		return err
	}

	res, err := tx.Exec(`
		UPDATE wine_pack SET status=$1
		WHERE id = ANY($2) AND status=$3
	`, models.PackDispatched, pq.Array(note.PackIDs), models.PackAssembled)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(note.PackIDs)) {
		return fmt.Errorf("only %d of %d packs were still Ensamblado; dispatch aborted", n, len(note.PackIDs))
	}

	return tx.Commit()
}

// ------------------------ Get Dispatches ------------------------

func (r *PostgresDispatchRepo) GetDispatches(filters map[string]interface{}, single bool) ([]*models.DispatchNote, error) {
	query := `
		SELECT id, dispatch_date, customer, destination, carrier, truck_plate, driver,
		       pack_ids, status, created_by, created_at, pdf_created_at, pdf_path
		FROM dispatch_note
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
		query += " ORDER BY dispatch_date DESC"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.DispatchNote
	for rows.Next() {
		var d models.DispatchNote
		var packIDsJSON []byte
		err := rows.Scan(&d.ID, &d.DispatchDate, &d.Customer, &d.Destination, &d.Carrier,
			&d.TruckPlate, &d.Driver, &packIDsJSON, &d.Status, &d.CreatedBy, &d.CreatedAt,
			&d.PdfCreatedAt, &d.PdfPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(packIDsJSON, &d.PackIDs); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Populate referenced packs for responses and PDF rendering.
	for _, d := range result {
		if len(d.PackIDs) == 0 {
			continue
		}
		packRows, err := r.DB.Query(`
			SELECT id, model_id, model_name, order_id, creation_date, contents, supplies_used, status, created_by
			FROM wine_pack
			WHERE id = ANY($1)
		`, pq.Array(d.PackIDs))
		if err != nil {
			return nil, err
		}
		for packRows.Next() {
			p, err := scanPackRow(packRows)
			if err != nil {
				packRows.Close()
				return nil, err
			}
			d.Packs = append(d.Packs, *p)
		}
		if err := packRows.Err(); err != nil {
			packRows.Close()
			return nil, err
		}
		packRows.Close()
	}

	if single {
		if len(result) > 0 {
			return []*models.DispatchNote{result[0]}, nil
		}
		return nil, nil
	}
	return result, nil
}

// ------------------------ PDF Helpers ------------------------

func (r *PostgresDispatchRepo) UpdatePDFInfo(dispatchID string, path string, createdAt time.Time) error {
	_, err := r.DB.Exec(`
		UPDATE dispatch_note
		SET pdf_path = $1, pdf_created_at = $2
		WHERE id = $3
	`, path, createdAt, dispatchID)
	return err
}
