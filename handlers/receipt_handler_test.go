package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinopack/audit"
)

func TestGetAllReceiptsPassesOnlyKnownFilters(t *testing.T) {
	repo := &fakeReceiptRepo{}
	h := &ReceiptHandler{Repo: repo, Audit: audit.Nop()}

	req := httptest.NewRequest(http.MethodGet,
		"/receipts?status=verificado&carrier=Transportes+SA&created_by=1+OR+1%3D1&foo=bar", nil)
	rec := httptest.NewRecorder()

	h.GetAllReceipts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"status":  "verificado",
		"carrier": "Transportes SA",
	}, repo.lastFilters)
}
