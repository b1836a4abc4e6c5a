package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAssignment(t *testing.T) {
	available := map[string]int64{"L1": 100, "L2": 40}

	tests := []struct {
		name        string
		required    int64
		assignments []LotAssignment
		wantErr     error
	}{
		{
			name:        "exact single lot",
			required:    100,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 100}},
		},
		{
			name:        "exact split across lots",
			required:    120,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 80}, {Lot: "L2", Quantity: 40}},
		},
		{
			name:        "sum below required",
			required:    100,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 90}},
			wantErr:     ErrAssignmentSum,
		},
		{
			name:        "sum above required",
			required:    100,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 70}, {Lot: "L2", Quantity: 40}},
			wantErr:     ErrAssignmentSum,
		},
		{
			name:        "exceeds lot availability",
			required:    50,
			assignments: []LotAssignment{{Lot: "L2", Quantity: 50}},
			wantErr:     ErrAssignmentBounds,
		},
		{
			name:        "repeated lot exceeds availability cumulatively",
			required:    120,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 60}, {Lot: "L1", Quantity: 60}},
			wantErr:     ErrAssignmentBounds,
		},
		{
			name:        "repeated lot within availability",
			required:    100,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 60}, {Lot: "L1", Quantity: 40}},
		},
		{
			name:        "unknown lot",
			required:    10,
			assignments: []LotAssignment{{Lot: "L9", Quantity: 10}},
			wantErr:     ErrAssignmentBounds,
		},
		{
			name:        "empty lot",
			required:    10,
			assignments: []LotAssignment{{Lot: "", Quantity: 10}},
			wantErr:     ErrAssignmentLot,
		},
		{
			name:        "zero quantity",
			required:    10,
			assignments: []LotAssignment{{Lot: "L1", Quantity: 0}},
			wantErr:     ErrAssignmentQty,
		},
		{
			name:        "negative quantity",
			required:    10,
			assignments: []LotAssignment{{Lot: "L1", Quantity: -5}},
			wantErr:     ErrAssignmentQty,
		},
		{
			name:     "empty proposal for zero required",
			required: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(tt.required, tt.assignments, available)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAssignmentDoesNotMutateProposal(t *testing.T) {
	proposal := []LotAssignment{{Lot: "L1", Quantity: 30}}

	_ = ValidateAssignment(100, proposal, map[string]int64{"L1": 100})

	assert.Equal(t, []LotAssignment{{Lot: "L1", Quantity: 30}}, proposal)
}
