package inventory_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"laim/core/database"
	"laim/feature/inventory"
	"laim/feature/inventory/models"
	inventorysync "laim/feature/inventory/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	name    string
	devices []models.Device
	err     error
}

func (f *fakeSource) Name() string                          { return f.name }
func (f *fakeSource) Authenticate(_ context.Context) bool   { return true }
func (f *fakeSource) TestConnection(_ context.Context) bool { return true }
func (f *fakeSource) GetDevices(_ context.Context) ([]models.Device, error) {
	return f.devices, f.err
}
func (f *fakeSource) Close() {}

func setupApp(t *testing.T, netdisco, librenms *fakeSource) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}, &models.SyncLog{}))

	svc := inventorysync.NewService(db, netdisco, librenms, zap.NewNop())
	feature := inventory.NewFeature(svc, zap.NewNop())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	return app, db
}

func TestFeature(t *testing.T) {
	feature := inventory.NewFeature(nil, zap.NewNop())
	assert.Equal(t, "inventory", feature.Name())
	assert.True(t, feature.IsEnabled())
}

func TestHandleTriggerSync(t *testing.T) {
	netdisco := &fakeSource{name: "netdisco", devices: []models.Device{
		{Hostname: "sw-01", SerialNumber: "SN1", Model: "Catalyst 9300", Source: "netdisco"},
	}}
	librenms := &fakeSource{name: "librenms"}
	app, db := setupApp(t, netdisco, librenms)

	req := httptest.NewRequest("POST", "/sync/all", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Log    models.SyncLog       `json:"log"`
		Result inventorysync.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, models.SyncCompleted, payload.Log.Status)
	assert.Equal(t, "all", payload.Log.Source)
	assert.Equal(t, 1, payload.Result.Created)

	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHandleTriggerSync_UnknownSource(t *testing.T) {
	app, _ := setupApp(t, &fakeSource{name: "netdisco"}, &fakeSource{name: "librenms"})

	req := httptest.NewRequest("POST", "/sync/solarwinds", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleTriggerSync_SourceFailure(t *testing.T) {
	librenms := &fakeSource{name: "librenms", err: errors.New("connection refused")}
	app, _ := setupApp(t, &fakeSource{name: "netdisco"}, librenms)

	req := httptest.NewRequest("POST", "/sync/librenms", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	// The run itself is recorded; a failed source is a FAILED run, not an
	// HTTP error.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Log models.SyncLog `json:"log"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, models.SyncFailed, payload.Log.Status)
}

func TestHandleGetLogs(t *testing.T) {
	app, db := setupApp(t, &fakeSource{name: "netdisco"}, &fakeSource{name: "librenms"})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/sync/netdisco", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	db.Model(&models.SyncLog{}).Count(&count)
	require.Equal(t, int64(3), count)

	req := httptest.NewRequest("GET", "/sync/logs?limit=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Logs []models.SyncLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Logs, 2)
}
