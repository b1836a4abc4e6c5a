package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vinopack/models"
)

type AssemblyState int

const (
	ModelUnselected AssemblyState = iota
	ModelSelected
	AllRequirementsAssigned
)

var (
	ErrNoModelSelected    = errors.New("no pack model selected")
	ErrUnknownProduct     = errors.New("product is not required by the selected model")
	ErrMissingAssignments = errors.New("not every product requirement has a lot assignment")
	ErrMissingOrderID     = errors.New("order id is required")
	ErrSupplyShortage     = errors.New("insufficient consumable stock for the model's supply requirements")
)

// Assembly is one in-progress pack build. It validates lot assignments
// against the stock snapshot it was given and emits a WinePack on Finalize.
// It holds no reference to storage: the caller persists the emitted pack and
// calls Reset only after persistence succeeded, so a failed save never
// discards assignment work.
type Assembly struct {
	model       *models.PackModel
	supplies    map[string]models.Supply // by id, for usage names
	assignments map[string][]LotAssignment
	orderID     string
}

func NewAssembly() *Assembly {
	return &Assembly{assignments: make(map[string][]LotAssignment)}
}

// SelectModel chooses the recipe to build against. Any prior assignment state
// is discarded: a different model imposes a different requirement set.
func (a *Assembly) SelectModel(model models.PackModel, supplies []models.Supply) {
	a.model = &model
	a.supplies = make(map[string]models.Supply, len(supplies))
	for _, s := range supplies {
		a.supplies[s.ID] = s
	}
	a.assignments = make(map[string][]LotAssignment)
	a.orderID = ""
}

func (a *Assembly) SetOrderID(orderID string) {
	a.orderID = orderID
}

// AssignLots validates and commits the lot partition for one required
// product. A re-assignment replaces the prior one for that product wholesale;
// on any validation error the prior assignment stays untouched.
func (a *Assembly) AssignLots(productName string, proposal []LotAssignment, availableByLot map[string]int64) error {
	if a.model == nil {
		return ErrNoModelSelected
	}
	required, ok := a.requiredQuantity(productName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProduct, productName)
	}
	if err := ValidateAssignment(required, proposal, availableByLot); err != nil {
		return err
	}
	committed := make([]LotAssignment, len(proposal))
	copy(committed, proposal)
	a.assignments[productName] = committed
	return nil
}

// ClearAssignment drops the committed lots for one product, sending the
// workflow back to ModelSelected if it was fully assigned.
func (a *Assembly) ClearAssignment(productName string) {
	delete(a.assignments, productName)
}

func (a *Assembly) State() AssemblyState {
	if a.model == nil {
		return ModelUnselected
	}
	for _, req := range a.model.ProductRequirements {
		if len(a.assignments[req.ProductName]) == 0 {
			return ModelSelected
		}
	}
	return AllRequirementsAssigned
}

// Finalize emits the assembled pack. Every product requirement must carry a
// committed assignment, the order id must be set, and the model's supply
// requirements must fit within the available consumable stock. The assembly
// state is kept; the caller resets it once the pack is persisted.
func (a *Assembly) Finalize(availableBySupply map[string]int64, createdBy int64) (*models.WinePack, error) {
	if a.model == nil {
		return nil, ErrNoModelSelected
	}
	if a.State() != AllRequirementsAssigned {
		return nil, ErrMissingAssignments
	}
	if a.orderID == "" {
		return nil, ErrMissingOrderID
	}

	var suppliesUsed []models.SupplyUsage
	for _, req := range a.model.SupplyRequirements {
		s, ok := a.supplies[req.SupplyID]
		if !ok {
			return nil, fmt.Errorf("unknown supply %q in model %s", req.SupplyID, a.model.ID)
		}
		if availableBySupply[s.Name] < req.Quantity {
			return nil, fmt.Errorf("%w: supply %q has %d, need %d",
				ErrSupplyShortage, s.Name, availableBySupply[s.Name], req.Quantity)
		}
		suppliesUsed = append(suppliesUsed, models.SupplyUsage{
			SupplyID:   req.SupplyID,
			SupplyName: s.Name,
			Quantity:   req.Quantity,
		})
	}

	var contents []models.PackContent
	for _, req := range a.model.ProductRequirements {
		for _, as := range a.assignments[req.ProductName] {
			contents = append(contents, models.PackContent{
				ProductName: req.ProductName,
				Lot:         as.Lot,
				Quantity:    as.Quantity,
			})
		}
	}

	return &models.WinePack{
		ID:           NewPackID(),
		ModelID:      a.model.ID,
		ModelName:    a.model.Name,
		OrderID:      a.orderID,
		CreationDate: time.Now().UTC(),
		Contents:     contents,
		SuppliesUsed: suppliesUsed,
		Status:       models.PackAssembled,
		CreatedBy:    createdBy,
	}, nil
}

// Reset returns the workflow to ModelUnselected for the next pack. Call it
// only after the emitted pack has been persisted.
func (a *Assembly) Reset() {
	a.model = nil
	a.supplies = nil
	a.assignments = make(map[string][]LotAssignment)
	a.orderID = ""
}

func (a *Assembly) requiredQuantity(productName string) (int64, bool) {
	for _, req := range a.model.ProductRequirements {
		if req.ProductName == productName {
			return req.Quantity, true
		}
	}
	return 0, false
}

// NewPackID builds a timestamp-derived pack id with a short uuid suffix so
// two packs created on the same millisecond by different sessions still get
// distinct ids.
func NewPackID() string {
	return fmt.Sprintf("PACK-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
