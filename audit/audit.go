// Package audit writes the action trail. Recording is fire-and-forget: a
// failed audit write is logged and never rolls back the mutation it follows.
package audit

import (
	"fmt"

	"vinopack/models"
	"vinopack/repository"
)

// Recorder is the audit sink consulted by handlers after successful
// mutations.
type Recorder interface {
	Record(action string, actorID int64, actorName string)
}

type repoRecorder struct {
	repo repository.AuditRepository
}

func NewRecorder(repo repository.AuditRepository) Recorder {
	return &repoRecorder{repo: repo}
}

func (r *repoRecorder) Record(action string, actorID int64, actorName string) {
	err := r.repo.InsertEntry(&models.AuditEntry{
		Action:    action,
		ActorID:   actorID,
		ActorName: actorName,
	})
	if err != nil {
		// Log the error but don't block the operation that triggered it
		fmt.Printf("failed to record audit entry %q: %v\n", action, err)
	}
}

// Nop returns a recorder that drops everything, for tests and for running
// without an audit store.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Record(string, int64, string) {}
