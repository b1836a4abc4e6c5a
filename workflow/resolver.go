// Package workflow drives pack assembly and dispatch: lot assignment
// validation, the assembly state machine, and dispatch preparation.
package workflow

import (
	"errors"
	"fmt"
)

// Validation failures detected before any persistence attempt.
var (
	ErrAssignmentSum    = errors.New("assigned quantities do not sum to the required quantity")
	ErrAssignmentBounds = errors.New("assigned quantity exceeds the lot's available stock")
	ErrAssignmentLot    = errors.New("assignment without a lot")
	ErrAssignmentQty    = errors.New("assignment quantity must be positive")
)

// LotAssignment is one user-proposed (lot, quantity) line covering part of a
// product requirement.
type LotAssignment struct {
	Lot      string `json:"lot"`
	Quantity int64  `json:"quantity"`
}

// ValidateAssignment checks a proposed partition of a required quantity
// against the available stock per lot. The proposal is accepted only when the
// quantities sum to required exactly and every line names a lot, is positive,
// and fits within that lot's availability. Bounds are checked cumulatively per
// lot, so two lines naming the same lot cannot together exceed what a single
// line could not. The caller keeps its in-progress lines on rejection; nothing
// here mutates the proposal.
func ValidateAssignment(required int64, assignments []LotAssignment, availableByLot map[string]int64) error {
	var sum int64
	proposed := make(map[string]int64, len(assignments))
	for _, a := range assignments {
		if a.Lot == "" {
			return ErrAssignmentLot
		}
		if a.Quantity <= 0 {
			return fmt.Errorf("%w: lot %q got %d", ErrAssignmentQty, a.Lot, a.Quantity)
		}
		proposed[a.Lot] += a.Quantity
		avail, ok := availableByLot[a.Lot]
		if !ok || proposed[a.Lot] > avail {
			return fmt.Errorf("%w: lot %q has %d, requested %d", ErrAssignmentBounds, a.Lot, avail, proposed[a.Lot])
		}
		sum += a.Quantity
	}
	if sum != required {
		return fmt.Errorf("%w: got %d, need %d", ErrAssignmentSum, sum, required)
	}
	return nil
}
