package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vinopack/models"
)

var (
	ErrNoPacksSelected   = errors.New("no packs selected for dispatch")
	ErrPackNotSelectable = errors.New("pack is not in Ensamblado status")
	ErrMissingCustomer   = errors.New("customer and destination are required")
)

// SelectablePacks filters the packs a dispatch may reference: only assembled,
// not-yet-dispatched packs. Already-dispatched packs never reach the
// selection, which rules out double dispatch at this layer.
func SelectablePacks(packs []models.WinePack) []models.WinePack {
	out := make([]models.WinePack, 0, len(packs))
	for _, p := range packs {
		if p.Status == models.PackAssembled {
			out = append(out, p)
		}
	}
	return out
}

// BuildDispatchNote validates the selection against the latest pack set and
// constructs the note. Statuses are re-checked here rather than trusting the
// client's selection, so a stale client cannot dispatch a pack twice. The
// store-side create still re-verifies inside its own write.
func BuildDispatchNote(customer, destination, carrier string, truckPlate, driver *string, packIDs []string, packs []models.WinePack, createdBy int64) (*models.DispatchNote, error) {
	if customer == "" || destination == "" {
		return nil, ErrMissingCustomer
	}
	if len(packIDs) == 0 {
		return nil, ErrNoPacksSelected
	}

	byID := make(map[string]*models.WinePack, len(packs))
	for i := range packs {
		byID[packs[i].ID] = &packs[i]
	}
	for _, id := range packIDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown pack %q", id)
		}
		if p.Status != models.PackAssembled {
			return nil, fmt.Errorf("%w: %s is %s", ErrPackNotSelectable, id, p.Status)
		}
	}

	return &models.DispatchNote{
		ID:           NewDispatchID(),
		DispatchDate: time.Now().UTC(),
		Customer:     customer,
		Destination:  destination,
		Carrier:      carrier,
		TruckPlate:   truckPlate,
		Driver:       driver,
		PackIDs:      packIDs,
		Status:       models.DispatchCompleted,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func NewDispatchID() string {
	return fmt.Sprintf("DSP-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewReceiptID builds the default receipt id when the operator leaves the
// free-text id blank.
func NewReceiptID() string {
	return fmt.Sprintf("REC-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
