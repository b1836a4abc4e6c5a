package repository

import (
	"database/sql"
	"time"

	"vinopack/models"
)

type PostgresAuditRepo struct {
	DB *sql.DB
}

func NewPostgresAuditRepo(db *sql.DB) *PostgresAuditRepo {
	return &PostgresAuditRepo{DB: db}
}

func (r *PostgresAuditRepo) InsertEntry(entry *models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Exec(`
		INSERT INTO audit_log (action, actor_id, actor_name, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.Action, entry.ActorID, entry.ActorName, entry.CreatedAt)
	return err
}

func (r *PostgresAuditRepo) GetEntries(limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(`
		SELECT id, action, actor_id, actor_name, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.ActorID, &e.ActorName, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
