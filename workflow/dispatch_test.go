package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinopack/models"
)

func TestSelectablePacks(t *testing.T) {
	packs := []models.WinePack{
		{ID: "PACK-1", Status: models.PackAssembled},
		{ID: "PACK-2", Status: models.PackDispatched},
		{ID: "PACK-3", Status: models.PackAssembled},
	}

	got := SelectablePacks(packs)

	require.Len(t, got, 2)
	assert.Equal(t, "PACK-1", got[0].ID)
	assert.Equal(t, "PACK-3", got[1].ID)
}

func TestBuildDispatchNote(t *testing.T) {
	packs := []models.WinePack{
		{ID: "PACK-1", Status: models.PackAssembled},
		{ID: "PACK-2", Status: models.PackDispatched},
	}

	t.Run("missing customer", func(t *testing.T) {
		_, err := BuildDispatchNote("", "Madrid", "Transportes SA", nil, nil, []string{"PACK-1"}, packs, 1)
		assert.ErrorIs(t, err, ErrMissingCustomer)
	})

	t.Run("missing destination", func(t *testing.T) {
		_, err := BuildDispatchNote("Bodega Cliente", "", "Transportes SA", nil, nil, []string{"PACK-1"}, packs, 1)
		assert.ErrorIs(t, err, ErrMissingCustomer)
	})

	t.Run("no packs selected", func(t *testing.T) {
		_, err := BuildDispatchNote("Bodega Cliente", "Madrid", "Transportes SA", nil, nil, nil, packs, 1)
		assert.ErrorIs(t, err, ErrNoPacksSelected)
	})

	t.Run("unknown pack", func(t *testing.T) {
		_, err := BuildDispatchNote("Bodega Cliente", "Madrid", "Transportes SA", nil, nil, []string{"PACK-9"}, packs, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown pack")
	})

	t.Run("already dispatched pack", func(t *testing.T) {
		_, err := BuildDispatchNote("Bodega Cliente", "Madrid", "Transportes SA", nil, nil, []string{"PACK-2"}, packs, 1)
		assert.ErrorIs(t, err, ErrPackNotSelectable)
	})

	t.Run("mixed selection fails whole", func(t *testing.T) {
		_, err := BuildDispatchNote("Bodega Cliente", "Madrid", "Transportes SA", nil, nil, []string{"PACK-1", "PACK-2"}, packs, 1)
		assert.ErrorIs(t, err, ErrPackNotSelectable)
	})

	t.Run("success", func(t *testing.T) {
		plate := "1234-ABC"
		note, err := BuildDispatchNote("Bodega Cliente", "Madrid", "Transportes SA", &plate, nil, []string{"PACK-1"}, packs, 7)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(note.ID, "DSP-"))
		assert.Equal(t, "Bodega Cliente", note.Customer)
		assert.Equal(t, "Madrid", note.Destination)
		assert.Equal(t, "Transportes SA", note.Carrier)
		assert.Equal(t, &plate, note.TruckPlate)
		assert.Nil(t, note.Driver)
		assert.Equal(t, []string{"PACK-1"}, note.PackIDs)
		assert.Equal(t, models.DispatchCompleted, note.Status)
		assert.Equal(t, int64(7), note.CreatedBy)
		assert.False(t, note.DispatchDate.IsZero())
	})
}
