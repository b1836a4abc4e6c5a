package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"vinopack/models"
)

type PostgresProfileRepo struct {
	DB *sql.DB
}

func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{DB: db}
}

// SaveProfile inserts or updates the warehouse identity record
func (r *PostgresProfileRepo) SaveProfile(profile *models.WarehouseProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	contactsJSON, err := json.Marshal(profile.Contacts)
	if err != nil {
		return err
	}

	// If ID is passed → UPDATE, else INSERT
	if profile.ID > 0 {
		_, err = r.DB.Exec(`
			UPDATE warehouse_profile
			SET name=$1, address=$2, city=$3, province=$4, postal_code=$5,
				nif=$6, footnote=$7, contacts=$8
			WHERE id=$9
		`, profile.CompanyName, profile.Address, profile.City, profile.Province, profile.PostalCode,
			profile.NIF, profile.Footnote, contactsJSON, profile.ID)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO warehouse_profile
			(name, address, city, province, postal_code, nif, footnote, contacts, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, profile.CompanyName, profile.Address, profile.City, profile.Province, profile.PostalCode,
			profile.NIF, profile.Footnote, contactsJSON, profile.CreatedAt)
	}

	return err
}

// GetProfile fetches the latest warehouse identity record
func (r *PostgresProfileRepo) GetProfile() (*models.WarehouseProfile, error) {
	profile := &models.WarehouseProfile{}
	var contactsJSON []byte

	err := r.DB.QueryRow(`
		SELECT id, name, address, city, province, postal_code, nif, footnote, contacts, created_at
		FROM warehouse_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&profile.ID, &profile.CompanyName, &profile.Address, &profile.City, &profile.Province,
		&profile.PostalCode, &profile.NIF, &profile.Footnote, &contactsJSON, &profile.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(contactsJSON) > 0 {
		if err := json.Unmarshal(contactsJSON, &profile.Contacts); err != nil {
			return nil, err
		}
	}

	return profile, nil
}
