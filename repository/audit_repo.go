package repository

import "vinopack/models"

type AuditRepository interface {
	InsertEntry(entry *models.AuditEntry) error
	GetEntries(limit int) ([]*models.AuditEntry, error)
}
