package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinopack/models"
)

func testModel() models.PackModel {
	return models.PackModel{
		ID:   "MOD-1",
		Name: "Estuche Rioja x6",
		ProductRequirements: []models.ProductRequirement{
			{ProductName: "Rioja", Quantity: 6},
		},
		SupplyRequirements: []models.SupplyRequirement{
			{SupplyID: "SUP-1", Quantity: 1},
		},
	}
}

func testSupplies() []models.Supply {
	return []models.Supply{{ID: "SUP-1", Name: "Estuche Madera"}}
}

func TestAssemblyStateProgression(t *testing.T) {
	a := NewAssembly()
	assert.Equal(t, ModelUnselected, a.State())

	a.SelectModel(testModel(), testSupplies())
	assert.Equal(t, ModelSelected, a.State())

	err := a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100})
	require.NoError(t, err)
	assert.Equal(t, AllRequirementsAssigned, a.State())

	a.ClearAssignment("Rioja")
	assert.Equal(t, ModelSelected, a.State())
}

func TestAssignLotsWithoutModel(t *testing.T) {
	a := NewAssembly()

	err := a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100})

	assert.ErrorIs(t, err, ErrNoModelSelected)
}

func TestAssignLotsUnknownProduct(t *testing.T) {
	a := NewAssembly()
	a.SelectModel(testModel(), testSupplies())

	err := a.AssignLots("Albariño", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100})

	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestAssignLotsReplacesWholesale(t *testing.T) {
	a := NewAssembly()
	a.SelectModel(testModel(), testSupplies())
	available := map[string]int64{"L1": 100, "L2": 100}

	require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, available))
	require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L2", Quantity: 6}}, available))
	a.SetOrderID("PED-9")

	pack, err := a.Finalize(map[string]int64{"Estuche Madera": 10}, 1)
	require.NoError(t, err)

	// only the second assignment survives
	require.Len(t, pack.Contents, 1)
	assert.Equal(t, "L2", pack.Contents[0].Lot)
}

func TestAssignLotsKeepsPriorOnRejection(t *testing.T) {
	a := NewAssembly()
	a.SelectModel(testModel(), testSupplies())
	available := map[string]int64{"L1": 100}

	require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, available))

	err := a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 4}}, available)
	require.ErrorIs(t, err, ErrAssignmentSum)

	assert.Equal(t, AllRequirementsAssigned, a.State(), "rejected proposal must not clear the committed assignment")
}

func TestSelectModelResetsAssignments(t *testing.T) {
	a := NewAssembly()
	a.SelectModel(testModel(), testSupplies())
	require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100}))
	a.SetOrderID("PED-9")

	other := testModel()
	other.ID = "MOD-2"
	a.SelectModel(other, testSupplies())

	assert.Equal(t, ModelSelected, a.State())
	_, err := a.Finalize(map[string]int64{"Estuche Madera": 10}, 1)
	assert.ErrorIs(t, err, ErrMissingAssignments)
}

func TestFinalize(t *testing.T) {
	setup := func() *Assembly {
		a := NewAssembly()
		a.SelectModel(testModel(), testSupplies())
		return a
	}
	supplies := map[string]int64{"Estuche Madera": 10}

	t.Run("no model selected", func(t *testing.T) {
		a := NewAssembly()
		_, err := a.Finalize(supplies, 1)
		assert.ErrorIs(t, err, ErrNoModelSelected)
	})

	t.Run("missing assignments", func(t *testing.T) {
		a := setup()
		_, err := a.Finalize(supplies, 1)
		assert.ErrorIs(t, err, ErrMissingAssignments)
	})

	t.Run("missing order id", func(t *testing.T) {
		a := setup()
		require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100}))
		_, err := a.Finalize(supplies, 1)
		assert.ErrorIs(t, err, ErrMissingOrderID)
	})

	t.Run("supply shortage", func(t *testing.T) {
		a := setup()
		require.NoError(t, a.AssignLots("Rioja", []LotAssignment{{Lot: "L1", Quantity: 6}}, map[string]int64{"L1": 100}))
		a.SetOrderID("PED-9")
		_, err := a.Finalize(map[string]int64{"Estuche Madera": 0}, 1)
		assert.ErrorIs(t, err, ErrSupplyShortage)
	})

	t.Run("success", func(t *testing.T) {
		a := setup()
		require.NoError(t, a.AssignLots("Rioja", []LotAssignment{
			{Lot: "L1", Quantity: 4},
			{Lot: "L2", Quantity: 2},
		}, map[string]int64{"L1": 100, "L2": 100}))
		a.SetOrderID("PED-9")

		pack, err := a.Finalize(supplies, 42)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(pack.ID, "PACK-"))
		assert.Equal(t, "MOD-1", pack.ModelID)
		assert.Equal(t, "Estuche Rioja x6", pack.ModelName)
		assert.Equal(t, "PED-9", pack.OrderID)
		assert.Equal(t, models.PackAssembled, pack.Status)
		assert.Equal(t, int64(42), pack.CreatedBy)
		assert.Equal(t, []models.PackContent{
			{ProductName: "Rioja", Lot: "L1", Quantity: 4},
			{ProductName: "Rioja", Lot: "L2", Quantity: 2},
		}, pack.Contents)
		assert.Equal(t, []models.SupplyUsage{
			{SupplyID: "SUP-1", SupplyName: "Estuche Madera", Quantity: 1},
		}, pack.SuppliesUsed)

		// finalize keeps state until the caller persists and resets
		assert.Equal(t, AllRequirementsAssigned, a.State())
		a.Reset()
		assert.Equal(t, ModelUnselected, a.State())
	})
}

func TestNewPackIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewPackID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
