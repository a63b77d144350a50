package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/internal/application/usecase"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/metrics"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/persistence"
	apphttp "github.com/jhoicas/warehouse-vision/internal/interfaces/http"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// newAPI levanta la app completa sobre SQLite en memoria.
func newAPI(t *testing.T, authEnabled bool) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.EnsureSchema(ctx))

	log := logger.Nop()
	m := metrics.New()
	tx := persistence.NewTxRunner(db)
	locRepo := persistence.NewLocationRepository(db)
	itemRepo := persistence.NewInventoryItemRepository(db)
	actRepo := persistence.NewActivityLogRepository(db)

	app := apphttp.NewServer(apphttp.ServerConfig{
		AppName:     "warehouse-vision-test",
		WarehouseID: testWarehouseID,
		CORSOrigin:  "*",
		Metrics:     m.Handler(),
		Log:         log,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseID: testWarehouseID,
		LocationUC:  usecase.NewLocationUseCase(testWarehouseID, locRepo, actRepo),
		ItemUC:      inventory.NewItemUseCase(testWarehouseID, tx, itemRepo, m, log),
		AlertUC:     inventory.NewAlertUseCase(testWarehouseID, itemRepo, pdf.NewMarotoAlertsReport(), log),
		ResetUC: setup.NewResetUseCase(testWarehouseID, setup.ResetDeps{
			TxRunner: tx, Locations: locRepo, Items: itemRepo, Observer: m, MaxLocations: 1000,
		}, log),
		AuthEnabled: authEnabled,
		JWTSecret:   testJWTSecret,
		Log:         log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, auth string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

var smallShape = dto.InitializeWarehouseRequest{
	ZoneName: "A", Aisles: 2, RacksPerAisle: 2, LevelsPerRack: 2, PositionsPerLevel: 2, AisleNaming: "numeric",
}

func dateIn(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	app := newAPI(t, false)
	resp, body := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"warehouse-vision-test","warehouse":"1"}`, string(body))
}

func TestFlujoCompleto(t *testing.T) {
	app := newAPI(t, false)

	// configuración inicial
	resp, body := call(t, app, http.MethodGet, "/api/setup/config", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.CurrentConfigResponse](t, body).Exists)

	resp, body = call(t, app, http.MethodPost, "/api/setup/initialize", smallShape, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	initOut := decode[dto.InitializeWarehouseResponse](t, body)
	assert.Equal(t, 32, initOut.TotalLocations)
	assert.Equal(t, "A", initOut.ZoneName)

	resp, body = call(t, app, http.MethodGet, "/api/locations", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	slots := decode[[]dto.LocationSlotResponse](t, body)
	require.Len(t, slots, 32)
	for _, s := range slots {
		assert.Equal(t, "EMPTY", s.AlertStatus)
	}

	// colocar un item por vencer
	resp, body = call(t, app, http.MethodPost, "/api/inventory/items", dto.CreateItemRequest{
		LocationID: slots[0].LocationID, ProductName: "Leche Entera", SKU: "LAC-001",
		ArrivalDate: dateIn(-1), ExpirationDate: strPtr(dateIn(3)), AlertThresholdDays: intPtr(7),
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	item := decode[dto.ItemResponse](t, body)
	assert.Equal(t, "EXPIRING_SOON", item.AlertStatus)

	resp, body = call(t, app, http.MethodGet, "/api/locations?occupied=true", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]dto.LocationSlotResponse](t, body), 1)

	resp, body = call(t, app, http.MethodGet, "/api/locations/search/LAC-001", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.LocationSlotResponse](t, body), 1)

	resp, body = call(t, app, http.MethodGet, "/api/locations/"+slots[0].LocationID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, slots[0].LocationID, decode[dto.LocationResponse](t, body).ID)

	resp, body = call(t, app, http.MethodGet, "/api/locations/stats/occupancy", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	occ := decode[dto.OccupancyStatsResponse](t, body)
	assert.Equal(t, 32, occ.Total)
	assert.Equal(t, 1, occ.Occupied)
	assert.Equal(t, "3.1", occ.OccupancyRate)

	resp, body = call(t, app, http.MethodGet, "/api/inventory/alerts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	alerts := decode[[]dto.ItemResponse](t, body)
	require.Len(t, alerts, 1)
	assert.Equal(t, item.ID, alerts[0].ID)

	resp, body = call(t, app, http.MethodGet, "/api/inventory/stats", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.AlertStatsResponse{TotalItems: 1, ExpiringSoon: 1}, decode[dto.AlertStatsResponse](t, body))

	resp, body = call(t, app, http.MethodGet, "/api/inventory/search?q=LECHE", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches := decode[dto.ListResponse[dto.ProductMatchResponse]](t, body)
	require.Equal(t, 1, matches.Total)
	assert.Equal(t, "LAC-001", matches.Items[0].SKU)

	// PUT parcial: null limpia el vencimiento
	resp, body = call(t, app, http.MethodPut, "/api/inventory/items/"+item.ID, `{"expiration_date":null}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decode[dto.ItemResponse](t, body)
	assert.Nil(t, updated.ExpirationDate)
	assert.Equal(t, "NO_EXPIRATION", updated.AlertStatus)
	assert.Equal(t, "Leche Entera", updated.ProductName)

	// con inventario presente el reset sin forzar se bloquea
	resp, body = call(t, app, http.MethodPost, "/api/setup/initialize", smallShape, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	blocked := decode[dto.ResetBlockedResponse](t, body)
	assert.Equal(t, "INVENTORY_PRESENT", blocked.Code)
	assert.Equal(t, 1, blocked.InventoryCount)
	assert.True(t, blocked.RequiresForceReset)

	resp, body = call(t, app, http.MethodGet, "/api/locations/activity/recent?limit=5", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	acts := decode[[]dto.ActivityResponse](t, body)
	require.Len(t, acts, 2)
	for _, a := range acts {
		assert.Equal(t, apphttp.MockUserID, a.UserID)
	}

	resp, _ = call(t, app, http.MethodDelete, "/api/inventory/items/"+item.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = call(t, app, http.MethodGet, "/api/inventory/items/"+item.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, body).Code)

	resp, body = call(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `warehouse_inventory_mutations_total{action="ASSIGN"} 1`)
	assert.Contains(t, string(body), `warehouse_resets_total{outcome="blocked"} 1`)
}

func TestForceReset(t *testing.T) {
	app := newAPI(t, false)
	resp, _ := call(t, app, http.MethodPost, "/api/setup/initialize", smallShape, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_, body := call(t, app, http.MethodGet, "/api/locations", nil, "")
	slots := decode[[]dto.LocationSlotResponse](t, body)

	resp, _ = call(t, app, http.MethodPost, "/api/inventory/items", dto.CreateItemRequest{
		LocationID: slots[3].LocationID, ProductName: "Cereal", SKU: "CER-010", ArrivalDate: dateIn(0),
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	forced := smallShape
	forced.ForceReset = true
	forced.Aisles = 1
	resp, body = call(t, app, http.MethodPost, "/api/setup/initialize", forced, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	out := decode[dto.InitializeWarehouseResponse](t, body)
	assert.Equal(t, 16, out.TotalLocations)
	assert.Equal(t, 1, out.ItemsRemoved)

	_, body = call(t, app, http.MethodGet, "/api/setup/config", nil, "")
	cfg := decode[dto.CurrentConfigResponse](t, body)
	assert.True(t, cfg.Exists)
	assert.Equal(t, 16, cfg.TotalLocations)
	assert.Equal(t, []string{"A"}, cfg.Zones)
}

func TestErroresDeEntrada(t *testing.T) {
	app := newAPI(t, false)

	resp, body := call(t, app, http.MethodPost, "/api/inventory/items", `{"location_id":`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, body).Code)

	resp, body = call(t, app, http.MethodPost, "/api/inventory/items", dto.CreateItemRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)

	bad := smallShape
	bad.Aisles = 0
	resp, body = call(t, app, http.MethodPost, "/api/setup/initialize", bad, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)

	resp, _ = call(t, app, http.MethodGet, "/api/locations?occupied=quizas", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/locations/activity/recent?limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/locations/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/inventory/search?q=", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(body))
}

func TestReportePDF(t *testing.T) {
	app := newAPI(t, false)
	resp, body := call(t, app, http.MethodGet, "/api/inventory/alerts/report", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAuthHabilitada(t *testing.T) {
	app := newAPI(t, true)

	resp, _ := call(t, app, http.MethodGet, "/api/setup/config", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/setup/config", nil, tokenForRole(t, "operator"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/setup/initialize", smallShape, tokenForRole(t, "operator"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/setup/config", nil, tokenFor(t, "otra-bodega", "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/setup/initialize", smallShape, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// /health queda fuera de la autenticación
	resp, _ = call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
