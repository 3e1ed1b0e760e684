package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppf-inventory/internal/application/dto"
	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/ppf-inventory/internal/interfaces/http"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		Stock:    inventory.NewStockUseCase(store.Items(), nil, nil, log),
		LowStock: inventory.NewLowStockUseCase(store.Items(), nil, nil, log),
		Registry: inventory.NewCategoryRegistry(store.Items(), store.Categories(), log),
		Sales:    inventory.NewRecordSaleUseCase(store.TxRunner(), nil, nil, log),
	})
	return app
}

// do ejecuta la petición y devuelve status y cuerpo.
func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err, "la petición de test no debe fallar")
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), "cuerpo JSON válido: %s", raw)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollos por categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestRolls_FlujoCompletoPorCategoria(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/api/inventory/categories/Garware%20Matt/rolls",
		`{"name":"R1","square_feet":300}`)
	require.Equal(t, http.StatusCreated, status, "agregar rollo por categoría debe devolver 201: %s", raw)
	roll := decode[entity.Roll](t, raw)
	assert.True(t, roll.RemainingSqft.Equal(decimal.NewFromInt(300)))

	status, raw = do(t, app, http.MethodGet, "/api/inventory/categories/stock", "")
	require.Equal(t, http.StatusOK, status)
	stock := decode[[]dto.CategoryStockResponse](t, raw)
	require.Len(t, stock, 1)
	assert.Equal(t, "Garware Matt", stock[0].Name)
	assert.False(t, stock[0].Virtual)
	itemID := stock[0].ItemID
	require.NotEmpty(t, itemID)

	status, raw = do(t, app, http.MethodPost, "/api/inventory/items/"+itemID+"/rolls/"+roll.ID+"/consume",
		`{"amount":"150","unit":"sqft"}`)
	require.Equal(t, http.StatusOK, status, "%s", raw)
	roll = decode[entity.Roll](t, raw)
	assert.True(t, roll.RemainingSqft.Equal(decimal.NewFromInt(150)))

	// Consumo mayor a lo que queda: se rechaza sin recortar.
	status, raw = do(t, app, http.MethodPost, "/api/inventory/items/"+itemID+"/rolls/"+roll.ID+"/consume",
		`{"amount":"151","unit":"sqft"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodGet, "/api/inventory/items/"+itemID+"/history/summary", "")
	require.Equal(t, http.StatusOK, status)
	summary := decode[dto.HistorySummaryResponse](t, raw)
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, summary.StockInCount)
	assert.Equal(t, 1, summary.StockOutCount)
	require.Contains(t, summary.ByUnit, "sqft")
	assert.True(t, summary.ByUnit["sqft"].Net.Equal(decimal.NewFromInt(150)))

	status, _ = do(t, app, http.MethodDelete, "/api/inventory/items/"+itemID+"/rolls/"+roll.ID, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/inventory/items/"+itemID+"/rolls/"+roll.ID, "")
	assert.Equal(t, http.StatusNotFound, status, "el rollo ya no existe")
}

func TestRolls_ValidacionYNoEncontrado(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/api/inventory/categories/Suntek/rolls", `{"name":"R1"}`)
	assert.Equal(t, http.StatusBadRequest, status, "un rollo sin medidas es inválido")
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = do(t, app, http.MethodPost, "/api/inventory/categories/Suntek/rolls", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/inventory/items/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CrearListarEliminar(t *testing.T) {
	app := buildTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/inventory/categories", `{"name":"Xpel Ultimate"}`)
	require.Equal(t, http.StatusCreated, status)
	status, raw := do(t, app, http.MethodPost, "/api/inventory/categories", `{"name":"Xpel Ultimate"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/api/inventory/categories/Garware%20Gloss/resolve", "")
	require.Equal(t, http.StatusOK, status, "%s", raw)
	item := decode[dto.ItemResponse](t, raw)
	assert.True(t, item.IsRollTracked)
	assert.True(t, item.LowStock, "sin rollos activos es stock bajo")

	status, raw = do(t, app, http.MethodGet, "/api/inventory/categories", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Garware Gloss", "Xpel Ultimate"}, decode[[]string](t, raw))

	status, raw = do(t, app, http.MethodGet, "/api/inventory/categories/stock", "")
	require.Equal(t, http.StatusOK, status)
	stock := decode[[]dto.CategoryStockResponse](t, raw)
	require.Len(t, stock, 2)
	assert.True(t, stock[1].Virtual, "Xpel Ultimate no tiene ítem persistido")

	status, _ = do(t, app, http.MethodDelete, "/api/inventory/categories/Xpel%20Ultimate", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/inventory/categories/Xpel%20Ultimate", "")
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Accesorios y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestAccessories_VentaYStockBajo(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/api/sales/accessories",
		`{"category":"Accesorios","name":"Microfiber Cloth","quantity":3,"unit_price":"4.50","initial_stock":20,"min_stock":17}`)
	require.Equal(t, http.StatusCreated, status, "%s", raw)
	sale := decode[dto.SaleResponse](t, raw)
	assert.Equal(t, 17, sale.Item.Quantity)
	assert.True(t, sale.Sale.Total.Equal(decimal.RequireFromString("13.5")))
	assert.True(t, sale.Item.LowStock, "17 <= min_stock 17")

	status, raw = do(t, app, http.MethodPost, "/api/sales/accessories",
		`{"category":"Accesorios","name":"Microfiber Cloth","quantity":25,"unit_price":"4.50"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/api/inventory/items/"+sale.Item.ID+"/adjust", `{"delta":5,"reason":"Reposición"}`)
	require.Equal(t, http.StatusOK, status, "%s", raw)
	item := decode[dto.ItemResponse](t, raw)
	assert.Equal(t, 22, item.Quantity)
	assert.False(t, item.LowStock)

	status, raw = do(t, app, http.MethodGet, "/api/inventory/low-stock", "")
	require.Equal(t, http.StatusOK, status)
	low := decode[struct {
		Total int                `json:"total"`
		Items []dto.ItemResponse `json:"items"`
	}](t, raw)
	assert.Equal(t, 0, low.Total)
	assert.Empty(t, low.Items)
}

func TestItems_CrearAccesorioYPaginar(t *testing.T) {
	app := buildTestApp(t)

	for _, name := range []string{"Cloth", "Squeegee", "Tape"} {
		status, raw := do(t, app, http.MethodPost, "/api/inventory/items",
			`{"category":"Accesorios","name":"`+name+`","initial_stock":4,"price":"2"}`)
		require.Equal(t, http.StatusCreated, status, "%s", raw)
	}
	status, _ := do(t, app, http.MethodPost, "/api/inventory/items", `{"category":"Accesorios","name":"Tape"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, raw := do(t, app, http.MethodGet, "/api/inventory/items?limit=2&offset=1", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ItemListResponse](t, raw)
	assert.Equal(t, 3, list.Page.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Squeegee", list.Items[0].Name)
	assert.True(t, list.Items[0].StockValue.Equal(decimal.NewFromInt(8)))

	status, raw = do(t, app, http.MethodGet, "/api/inventory/items?offset=10", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.ItemListResponse](t, raw).Items)
}
