package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vinopack/models"
)

func TestMergeReceiptHeaderPreservesCreationMetadata(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	existing := mongoReceiptHeader{
		ID:        "REC-1",
		Carrier:   "Transportes SA",
		CreatedBy: 7,
		CreatedAt: createdAt,
	}
	incoming := &models.GoodsReceipt{
		ID:        "REC-1",
		Carrier:   "Otro Transporte",
		Origin:    "Bodega Norte",
		Status:    models.ReceiptVerified,
		// client-sent creation metadata must not stick
		CreatedBy: 999,
		CreatedAt: time.Now().Add(48 * time.Hour),
	}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	h := mergeReceiptHeader(existing, incoming, now)

	assert.Equal(t, "Otro Transporte", h.Carrier)
	assert.Equal(t, "Bodega Norte", h.Origin)
	assert.Equal(t, int64(7), h.CreatedBy)
	assert.Equal(t, createdAt, h.CreatedAt)
	assert.Equal(t, &now, h.UpdatedAt)
}
