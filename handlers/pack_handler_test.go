package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinopack/audit"
	"vinopack/models"
)

// In-memory repositories, enough to drive the handlers end to end.

type fakeReceiptRepo struct {
	receipts    []*models.GoodsReceipt
	lastFilters map[string]interface{}
}

func (f *fakeReceiptRepo) CreateReceipt(r *models.GoodsReceipt) error {
	f.receipts = append(f.receipts, r)
	return nil
}

func (f *fakeReceiptRepo) GetReceipts(filters map[string]interface{}, single bool) ([]*models.GoodsReceipt, error) {
	f.lastFilters = filters
	return f.receipts, nil
}

func (f *fakeReceiptRepo) UpdateReceipt(r *models.GoodsReceipt) error { return nil }
func (f *fakeReceiptRepo) DeleteReceipt(id string) error              { return nil }
func (f *fakeReceiptRepo) RenameConsumableLot(supplyID, oldLot, newLot string) (int64, error) {
	return 0, nil
}

type fakeSupplyRepo struct {
	supplies []*models.Supply
	mermas   []*models.MermaRecord
}

func (f *fakeSupplyRepo) CreateSupply(s *models.Supply) error {
	f.supplies = append(f.supplies, s)
	return nil
}

func (f *fakeSupplyRepo) GetSupplies() ([]*models.Supply, error) { return f.supplies, nil }
func (f *fakeSupplyRepo) UpdateSupply(s *models.Supply) error    { return nil }
func (f *fakeSupplyRepo) DeleteSupply(id string) error           { return nil }

func (f *fakeSupplyRepo) CreateMerma(m *models.MermaRecord) error {
	f.mermas = append(f.mermas, m)
	return nil
}

func (f *fakeSupplyRepo) GetMermas() ([]*models.MermaRecord, error) { return f.mermas, nil }

type fakePackRepo struct {
	packModels []*models.PackModel
	packs      []*models.WinePack
}

func (f *fakePackRepo) CreateModel(m *models.PackModel) error {
	f.packModels = append(f.packModels, m)
	return nil
}

func (f *fakePackRepo) GetModels() ([]*models.PackModel, error) { return f.packModels, nil }
func (f *fakePackRepo) UpdateModel(m *models.PackModel) error   { return nil }
func (f *fakePackRepo) DeleteModel(id string) error             { return nil }

func (f *fakePackRepo) CreatePack(p *models.WinePack) error {
	f.packs = append(f.packs, p)
	return nil
}

func (f *fakePackRepo) GetPacks(filters map[string]interface{}, single bool) ([]*models.WinePack, error) {
	return f.packs, nil
}

type fakeDispatchRepo struct {
	notes    []*models.DispatchNote
	packRepo *fakePackRepo
}

func (f *fakeDispatchRepo) CreateDispatch(note *models.DispatchNote) error {
	f.notes = append(f.notes, note)
	for _, id := range note.PackIDs {
		for _, p := range f.packRepo.packs {
			if p.ID == id {
				p.Status = models.PackDispatched
			}
		}
	}
	return nil
}

func (f *fakeDispatchRepo) GetDispatches(filters map[string]interface{}, single bool) ([]*models.DispatchNote, error) {
	return f.notes, nil
}

func (f *fakeDispatchRepo) UpdatePDFInfo(id, path string, createdAt time.Time) error { return nil }

func seededLoader() (*DatasetLoader, *fakePackRepo) {
	receiptRepo := &fakeReceiptRepo{receipts: []*models.GoodsReceipt{{
		ID: "REC-1",
		Pallets: []models.ReceiptPallet{
			{
				Kind:    models.PalletProduct,
				Product: &models.ProductPallet{ProductName: "Rioja", Lot: "L1", TotalBottles: 100},
			},
			{
				Kind:    models.PalletProduct,
				Product: &models.ProductPallet{ProductName: "Rioja", Lot: "L2", TotalBottles: 50},
			},
			{
				Kind:       models.PalletConsumable,
				Consumable: &models.ConsumablePallet{SupplyID: "SUP-1", SupplyName: "Estuche Madera", Quantity: 20},
			},
		},
	}}}
	supplyRepo := &fakeSupplyRepo{supplies: []*models.Supply{
		{ID: "SUP-1", Name: "Estuche Madera"},
	}}
	packRepo := &fakePackRepo{packModels: []*models.PackModel{{
		ID:   "MOD-1",
		Name: "Estuche Rioja x6",
		ProductRequirements: []models.ProductRequirement{
			{ProductName: "Rioja", Quantity: 120},
		},
		SupplyRequirements: []models.SupplyRequirement{
			{SupplyID: "SUP-1", Quantity: 1},
		},
	}}}
	return &DatasetLoader{ReceiptRepo: receiptRepo, PackRepo: packRepo, SupplyRepo: supplyRepo}, packRepo
}

func assembleRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/packs", bytes.NewReader(payload))
	req.Header.Set("X-Actor-Id", "7")
	req.Header.Set("X-Actor-Name", "Ana")
	req.Header.Set("X-Actor-Role", "operario")
	return req
}

func TestAssemblePackSplitsAcrossLots(t *testing.T) {
	loader, packRepo := seededLoader()
	h := &PackHandler{Repo: packRepo, Loader: loader, Audit: audit.Nop()}

	body := map[string]interface{}{
		"model_id": "MOD-1",
		"order_id": "PED-9",
		"assignments": map[string]interface{}{
			"Rioja": []map[string]interface{}{
				{"lot": "L1", "quantity": 100},
				{"lot": "L2", "quantity": 20},
			},
		},
	}
	req := assembleRequest(t, body)
	rec := httptest.NewRecorder()

	h.AssemblePack(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, packRepo.packs, 1)
	pack := packRepo.packs[0]
	assert.Equal(t, models.PackAssembled, pack.Status)
	assert.Equal(t, int64(7), pack.CreatedBy)
	assert.Equal(t, []models.PackContent{
		{ProductName: "Rioja", Lot: "L1", Quantity: 100},
		{ProductName: "Rioja", Lot: "L2", Quantity: 20},
	}, pack.Contents)
}

func TestAssemblePackRejectsOverAssignment(t *testing.T) {
	loader, packRepo := seededLoader()
	h := &PackHandler{Repo: packRepo, Loader: loader, Audit: audit.Nop()}

	body := map[string]interface{}{
		"model_id": "MOD-1",
		"order_id": "PED-9",
		"assignments": map[string]interface{}{
			"Rioja": []map[string]interface{}{
				{"lot": "L1", "quantity": 120}, // L1 only has 100
			},
		},
	}
	rec := httptest.NewRecorder()

	h.AssemblePack(rec, assembleRequest(t, body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, packRepo.packs, "rejected assembly must not persist a pack")
}

func TestAssemblePackUnknownModel(t *testing.T) {
	loader, packRepo := seededLoader()
	h := &PackHandler{Repo: packRepo, Loader: loader, Audit: audit.Nop()}

	body := map[string]interface{}{"model_id": "MOD-9", "order_id": "PED-9"}
	rec := httptest.NewRecorder()

	h.AssemblePack(rec, assembleRequest(t, body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssemblePackForbiddenRole(t *testing.T) {
	loader, packRepo := seededLoader()
	h := &PackHandler{Repo: packRepo, Loader: loader, Audit: audit.Nop()}

	req := assembleRequest(t, map[string]interface{}{"model_id": "MOD-1"})
	req.Header.Set("X-Actor-Role", "visitante")
	rec := httptest.NewRecorder()

	h.AssemblePack(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, packRepo.packs)
}

func TestCreateDispatchTransitionsPacks(t *testing.T) {
	packRepo := &fakePackRepo{packs: []*models.WinePack{
		{ID: "PACK-1", Status: models.PackAssembled},
		{ID: "PACK-2", Status: models.PackAssembled},
	}}
	dispatchRepo := &fakeDispatchRepo{packRepo: packRepo}
	h := &DispatchHandler{Repo: dispatchRepo, PackRepo: packRepo, Audit: audit.Nop()}

	body, err := json.Marshal(CreateDispatchRequest{
		Customer:    "Bodega Cliente",
		Destination: "Madrid",
		Carrier:     "Transportes SA",
		PackIDs:     []string{"PACK-1", "PACK-2"},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/dispatch", bytes.NewReader(body))
	req.Header.Set("X-Actor-Id", "3")
	req.Header.Set("X-Actor-Role", "logistica")
	rec := httptest.NewRecorder()

	h.CreateDispatch(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, dispatchRepo.notes, 1)
	assert.Equal(t, models.DispatchCompleted, dispatchRepo.notes[0].Status)
	assert.Equal(t, models.PackDispatched, packRepo.packs[0].Status)
	assert.Equal(t, models.PackDispatched, packRepo.packs[1].Status)
}

func TestCreateDispatchRejectsDispatchedPack(t *testing.T) {
	packRepo := &fakePackRepo{packs: []*models.WinePack{
		{ID: "PACK-1", Status: models.PackDispatched},
	}}
	dispatchRepo := &fakeDispatchRepo{packRepo: packRepo}
	h := &DispatchHandler{Repo: dispatchRepo, PackRepo: packRepo, Audit: audit.Nop()}

	body, err := json.Marshal(CreateDispatchRequest{
		Customer:    "Bodega Cliente",
		Destination: "Madrid",
		Carrier:     "Transportes SA",
		PackIDs:     []string{"PACK-1"},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/dispatch", bytes.NewReader(body))
	req.Header.Set("X-Actor-Role", "logistica")
	rec := httptest.NewRecorder()

	h.CreateDispatch(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, dispatchRepo.notes)
}
