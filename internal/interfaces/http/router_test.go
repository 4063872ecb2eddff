package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/inventario-ciclos/internal/interfaces/http"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

type testApp struct {
	app   *fiber.App
	store *memory.Store
}

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp(t *testing.T, requireComplete, dev bool) *testApp {
	t.Helper()
	store := memory.NewStore()
	c := catalog.Default()
	log := logger.Nop()
	clock := func() time.Time { return fixedNow }

	progress := appinv.NewProgressUseCase(store.Inventories(), store.Counts(), c)
	gate := appinv.NewFinalizationGate(store.Inventories(), store.Reports(), requireComplete, log)
	gate.WithNow(clock)
	lifecycle := appinv.NewLifecycleUseCase(store.Inventories(), gate, nil, log)
	lifecycle.WithNow(clock)
	counts := appinv.NewCountLedger(store.Inventories(), store.Counts(), c, progress, log)
	counts.WithNow(clock)
	transits := appinv.NewTransitLedger(store.Inventories(), store.Transits(), log)
	transits.WithNow(clock)
	builder := report.NewBuilderUseCase(store.Inventories(), store.Counts(), store.Transits(), store.Reports(), c, log)
	builder.WithNow(clock)
	export := report.NewExportUseCase(store.Inventories(), store.Reports(), c,
		pdf.NewMarotoReportGenerator(), xlsx.NewReportExporter())

	deps := apphttp.RouterDeps{
		Catalog:       c,
		Lifecycle:     lifecycle,
		Progress:      progress,
		Counts:        counts,
		Transits:      transits,
		ReportBuilder: builder,
		ReportExport:  export,
		StorageDriver: "memory",
	}
	if dev {
		deps.TestData = appinv.NewTestDataUseCase(counts, store.Counts(), c, log)
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testApp{app: app, store: store}
}

func (ta *testApp) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func (ta *testApp) start(t *testing.T) dto.InventoryResponse {
	t.Helper()
	resp, body := ta.do(t, http.MethodPost, "/api/inventories", dto.StartInventoryRequest{Responsible: "Ana"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	return decode[dto.InventoryResponse](t, body)
}

func assertError(t *testing.T, resp *http.Response, body []byte, status int, code string) dto.ErrorResponse {
	t.Helper()
	require.Equal(t, status, resp.StatusCode, string(body))
	e := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, code, e.Code)
	assert.NotEmpty(t, e.Message)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	ta := buildTestApp(t, true, false)
	resp, body := ta.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Storage: "memory"}, decode[dto.HealthResponse](t, body))
}

func TestCatalog(t *testing.T) {
	ta := buildTestApp(t, true, false)
	resp, body := ta.do(t, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out, "regions")
	assert.Contains(t, out, "distribution_centers")
}

func TestStartInventory(t *testing.T) {
	ta := buildTestApp(t, true, false)

	resp, body := ta.do(t, http.MethodPost, "/api/inventories", map[string]string{})
	e := assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")
	assert.Contains(t, e.Message, "responsible")

	inv := ta.start(t)
	assert.Equal(t, "active", inv.Status)
	assert.Equal(t, fixedNow, inv.StartedAt.UTC())
	assert.Regexp(t, `^INV-MAR-20260310-\d{5}$`, inv.Code)

	resp, body = ta.do(t, http.MethodPost, "/api/inventories", dto.StartInventoryRequest{Responsible: "Bruno"})
	assertError(t, resp, body, fiber.StatusConflict, "CONFLICT")

	resp, body = ta.do(t, http.MethodGet, "/api/inventories/active", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, inv.ID, decode[dto.InventoryResponse](t, body).ID)

	resp, body = ta.do(t, http.MethodGet, "/api/inventories?limit=5", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.InventoryListResponse](t, body)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)
}

func TestActiveInventory_SinActivo(t *testing.T) {
	ta := buildTestApp(t, true, false)
	resp, body := ta.do(t, http.MethodGet, "/api/inventories/active", nil)
	assertError(t, resp, body, fiber.StatusNotFound, "NOT_FOUND")

	resp, body = ta.do(t, http.MethodGet, "/api/inventories/no-existe", nil)
	assertError(t, resp, body, fiber.StatusNotFound, "NOT_FOUND")
}

func TestCreateCount_AliasHeredadoYProgreso(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/counts", map[string]any{
		"inventory_id": inv.ID,
		"category":     "store",
		"loja":         "Loja 10",
		"asset_type":   "HB 623",
		"quantity":     5,
		"responsible":  "Ana",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	entry := decode[dto.CountEntryResponse](t, body)
	assert.Equal(t, "Loja 10", entry.Origin)

	resp, body = ta.do(t, http.MethodGet, "/api/inventories/"+inv.ID+"/progress", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.ProgressDTO{Stores: 2}, decode[dto.ProgressDTO](t, body))

	resp, body = ta.do(t, http.MethodGet, "/api/counts?inventory_id="+inv.ID+"&category=store", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CountEntryResponse](t, body), 1)
}

func TestCreateCount_Validaciones(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/counts", map[string]any{
		"inventory_id": inv.ID, "category": "warehouse", "origin": "Loja 1",
		"asset_type": "HB 623", "quantity": 0, "responsible": "Ana",
	})
	e := assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")
	assert.Contains(t, e.Message, "category")
	assert.Contains(t, e.Message, "quantity")

	resp, body = ta.do(t, http.MethodPost, "/api/counts", map[string]any{
		"inventory_id": "otro", "category": "store", "origin": "Loja 1",
		"asset_type": "HB 623", "quantity": 1, "responsible": "Ana",
	})
	assertError(t, resp, body, fiber.StatusNotFound, "NOT_FOUND")
}

func TestCreateCount_CuerpoXMLConservaOrigen(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	xmlBody := `<CreateCountRequest><InventoryID>` + inv.ID + `</InventoryID><Category>store</Category>` +
		`<Origin>Loja 3</Origin><AssetType>HB 623</AssetType><Quantity>2</Quantity><Responsible>Ana</Responsible></CreateCountRequest>`
	req := httptest.NewRequest(http.MethodPost, "/api/counts", bytes.NewBufferString(xmlBody))
	req.Header.Set("Content-Type", fiber.MIMEApplicationXML)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "Loja 3", decode[dto.CountEntryResponse](t, body).Origin)
}

func TestCounts_BulkEditarYEliminar(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/counts/bulk", map[string]any{
		"inventory_id": inv.ID,
		"category":     "sector",
		"setor_cd":     "CD SP - Expedição",
		"responsible":  "Ana",
		"items": []map[string]any{
			{"asset_type": "Palete PBR", "quantity": 10},
			{"asset_type": "HB 623", "quantity": 4},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	entries := decode[[]dto.CountEntryResponse](t, body)
	require.Len(t, entries, 2)
	assert.Equal(t, "CD SP - Expedição", entries[0].Origin)

	resp, body = ta.do(t, http.MethodPatch, "/api/counts/"+entries[0].ID, map[string]any{"quantity": 12})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, 12, decode[dto.CountEntryResponse](t, body).Quantity)

	resp, body = ta.do(t, http.MethodPatch, "/api/counts/"+entries[0].ID, map[string]any{"quantity": -1})
	assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")

	resp, body = ta.do(t, http.MethodDelete, "/api/counts/"+entries[1].ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, entries[1].ID, decode[dto.CountEntryResponse](t, body).ID)

	resp, body = ta.do(t, http.MethodDelete, "/api/counts/"+entries[1].ID, nil)
	assertError(t, resp, body, fiber.StatusNotFound, "NOT_FOUND")

	resp, body = ta.do(t, http.MethodPost, "/api/counts/bulk", map[string]any{
		"inventory_id": inv.ID, "category": "sector", "origin": "CD SP - Expedição",
		"responsible": "Ana", "items": []map[string]any{},
	})
	assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")
}

func TestTransits(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/transits", dto.CreateTransitRequest{
		InventoryID: inv.ID, Origin: "CD São Paulo", Destination: "CD São Paulo", AssetType: "HB 623", Quantity: 3,
	})
	e := assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")
	assert.Contains(t, e.Message, "origin and destination cannot be equal")

	resp, body = ta.do(t, http.MethodPost, "/api/transits", dto.CreateTransitRequest{
		InventoryID: inv.ID, Origin: "CD Rio de Janeiro", Destination: "CD São Paulo", AssetType: "HB 623", Quantity: 3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	rec := decode[dto.TransitRecordResponse](t, body)
	assert.Equal(t, "sent", rec.Status)
	assert.Nil(t, rec.ReceivedAt)

	resp, body = ta.do(t, http.MethodPatch, "/api/transits/"+rec.ID+"/status", dto.UpdateTransitStatusRequest{Status: "received"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	rec = decode[dto.TransitRecordResponse](t, body)
	assert.Equal(t, "received", rec.Status)
	require.NotNil(t, rec.ReceivedAt)
	assert.Equal(t, fixedNow, rec.ReceivedAt.UTC())

	resp, body = ta.do(t, http.MethodPatch, "/api/transits/"+rec.ID+"/status", dto.UpdateTransitStatusRequest{Status: "lost"})
	assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")

	resp, body = ta.do(t, http.MethodPost, "/api/transits/bulk", map[string]any{
		"inventory_id": inv.ID, "origin": "CD Curitiba", "destination": "CD São Paulo",
		"items": []map[string]any{{"asset_type": "Dolly", "quantity": 2}, {"asset_type": "Gaiola", "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	assert.Len(t, decode[[]dto.TransitRecordResponse](t, body), 2)

	resp, body = ta.do(t, http.MethodGet, "/api/transits?inventory_id="+inv.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.TransitRecordResponse](t, body), 3)

	resp, body = ta.do(t, http.MethodDelete, "/api/transits/"+rec.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	deleted := decode[dto.TransitRecordResponse](t, body)
	assert.Equal(t, rec.ID, deleted.ID)
	assert.Equal(t, "received", deleted.Status)
}

func TestReportYFinalizacion(t *testing.T) {
	ta := buildTestApp(t, false, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodGet, "/api/inventories/"+inv.ID+"/report", nil)
	assertError(t, resp, body, fiber.StatusNotFound, "NOT_FOUND")

	resp, body = ta.do(t, http.MethodPost, "/api/counts", dto.CreateCountRequest{
		InventoryID: inv.ID, Category: "store", Origin: "Loja 1", AssetType: "HB 623", Quantity: 5, Responsible: "Ana",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	gen := decode[dto.GenerateReportResponse](t, body)
	assert.False(t, gen.Complete)
	assert.False(t, gen.Validation.HasSupplier)
	assert.Equal(t, "draft", gen.Report.Status)
	assert.Equal(t, 5, gen.Report.StoreSummary["Loja 1"]["HB 623"])

	resp, body = ta.do(t, http.MethodGet, "/api/reports/"+gen.Report.ID+"/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "relatorio-"+inv.Code+".pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = ta.do(t, http.MethodGet, "/api/reports/"+gen.Report.ID+"/xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))

	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/finalize",
		dto.FinalizeInventoryRequest{ReportID: gen.Report.ID})
	assertError(t, resp, body, fiber.StatusBadRequest, "VALIDATION")

	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/finalize",
		dto.FinalizeInventoryRequest{ReportID: gen.Report.ID, Approver: "Carla"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	fin := decode[dto.FinalizeInventoryResponse](t, body)
	assert.Equal(t, "finalized", fin.Inventory.Status)
	assert.Equal(t, "approved", fin.Report.Status)
	assert.Equal(t, "Carla", fin.Report.ApprovedBy)

	resp, body = ta.do(t, http.MethodPost, "/api/counts", dto.CreateCountRequest{
		InventoryID: inv.ID, Category: "store", Origin: "Loja 2", AssetType: "HB 623", Quantity: 1, Responsible: "Ana",
	})
	assertError(t, resp, body, fiber.StatusConflict, "INVALID_STATE")

	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/report", nil)
	assertError(t, resp, body, fiber.StatusConflict, "INVALID_STATE")
}

func TestFinalize_InformeIncompletoRechazado(t *testing.T) {
	ta := buildTestApp(t, true, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	gen := decode[dto.GenerateReportResponse](t, body)

	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/finalize",
		dto.FinalizeInventoryRequest{ReportID: gen.Report.ID, Approver: "Carla"})
	assertError(t, resp, body, fiber.StatusConflict, "INVALID_STATE")
}

func TestFinalize_Compensada(t *testing.T) {
	ta := buildTestApp(t, false, false)
	inv := ta.start(t)

	resp, body := ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	gen := decode[dto.GenerateReportResponse](t, body)

	ta.store.FailOn(memory.OpReportApprove, errors.New("timeout"))
	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/finalize",
		dto.FinalizeInventoryRequest{ReportID: gen.Report.ID, Approver: "Carla"})
	e := assertError(t, resp, body, fiber.StatusInternalServerError, "ROLLED_BACK")
	assert.Contains(t, e.Error, "timeout")

	resp, body = ta.do(t, http.MethodGet, "/api/inventories/"+inv.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", decode[dto.InventoryResponse](t, body).Status)

	ta.store.FailOn(memory.OpInventoryReactivate, errors.New("sin conexión"))
	resp, body = ta.do(t, http.MethodPost, "/api/inventories/"+inv.ID+"/finalize",
		dto.FinalizeInventoryRequest{ReportID: gen.Report.ID, Approver: "Carla"})
	assertError(t, resp, body, fiber.StatusInternalServerError, "STORAGE_UNCERTAIN")
}

func TestDevTestData(t *testing.T) {
	prod := buildTestApp(t, true, false)
	resp, _ := prod.do(t, http.MethodPost, "/api/dev/test-data", map[string]any{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	ta := buildTestApp(t, true, true)
	inv := ta.start(t)
	resp, body := ta.do(t, http.MethodPost, "/api/dev/test-data", dto.TestDataRequest{
		InventoryID: inv.ID, Category: "supplier", ItemsPerOrigin: 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	res := decode[dto.TestDataResponse](t, body)
	assert.Equal(t, 6, res.Created)
	assert.Len(t, res.Origins, catalog.SupplierTotal)

	resp, body = ta.do(t, http.MethodGet, "/api/inventories/"+inv.ID+"/progress", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 100, decode[dto.ProgressDTO](t, body).Suppliers)

	ta.store.FailOn(memory.OpCountCreateMany, errors.New("disco lleno"))
	resp, body = ta.do(t, http.MethodPost, "/api/dev/test-data", dto.TestDataRequest{
		InventoryID: inv.ID, Category: "store", Origins: []string{"Loja 1", "Loja 2"},
	})
	require.Equal(t, fiber.StatusMultiStatus, resp.StatusCode, string(body))
	assert.Len(t, decode[dto.TestDataResponse](t, body).Failures, 2)
}
