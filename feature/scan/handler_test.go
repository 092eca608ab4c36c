package scan

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc, _ := testService(t, newCatalogStub(t))
	handler := NewHandler(svc, zap.NewNop())
	handler.RegisterRoutes(app)
	return app
}

func postScan(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/scan", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHandleScan(t *testing.T) {
	app := setupTestApp(t)

	status, body := postScan(t, app, `{"barcode": "8851234567890", "quantity": 2}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	record := data["record"].(map[string]any)
	assert.Equal(t, "100001", record["materialCode"])
	assert.Equal(t, float64(2), record["quantity"])
}

func TestHandleScan_DetailedQuantity(t *testing.T) {
	app := setupTestApp(t)

	status, body := postScan(t, app, `{"barcode": "18851234567897", "detailed": {"major": 1, "remainder": 3}}`)
	assert.Equal(t, 200, status)

	data := body["data"].(map[string]any)
	record := data["record"].(map[string]any)
	quantities := record["quantities"].(map[string]any)
	assert.Equal(t, float64(1), quantities["cs"])
	assert.Equal(t, float64(3), quantities["ea"])
}

func TestHandleScan_InvalidBarcode(t *testing.T) {
	app := setupTestApp(t)

	status, body := postScan(t, app, `{"barcode": "123"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["validation"])
}

func TestHandleScan_NotFound(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postScan(t, app, `{"barcode": "4000000000002"}`)
	assert.Equal(t, 404, status)
}

func TestHandlePreview(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("GET", "/scan/preview?barcode=18851234567897", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "cs", data["unit"])
	assert.Equal(t, false, data["singleUnit"])
}
