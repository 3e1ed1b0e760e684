package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppf-inventory/internal/application/dto"
	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de ítems, rollos y stock bajo.
type InventoryHandler struct {
	stock    *inventory.StockUseCase
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, lowStock: lowStock}
}

// ListItems godoc
// @Summary      Listar ítems de inventario
// @Tags         inventory
// @Produce      json
// @Param        limit   query     int  false  "Máximo de ítems (1-100, default 20)"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.ItemListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	page.Normalize()
	items, err := h.stock.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	start, end := page.Window(len(items))
	return c.JSON(dto.ItemListResponse{
		Items: dto.NewItemList(items[start:end]),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	})
}

// GetItem godoc
// @Summary      Obtener ítem con rollos e historial
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.stock.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// CreateAccessory godoc
// @Summary      Crear accesorio (stock discreto)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateAccessoryRequest  true  "category, name, unit, min_stock, price, initial_stock"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateAccessory(c *fiber.Ctx) error {
	var in dto.CreateAccessoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.stock.CreateAccessory(c.UserContext(), inventory.CreateAccessoryInput{
		Category:     in.Category,
		Name:         in.Name,
		Unit:         in.Unit,
		MinStock:     in.MinStock,
		Price:        in.Price,
		InitialStock: in.InitialStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// AddRoll godoc
// @Summary      Agregar rollo a un ítem
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID del ítem"
// @Param        body  body      dto.AddRollRequest  true  "name, square_feet y/o meters"
// @Success      201   {object}  entity.Roll
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rolls [post]
func (h *InventoryHandler) AddRoll(c *fiber.Ctx) error {
	return h.addRoll(c, entity.RefByID(c.Params("id")))
}

func (h *InventoryHandler) addRoll(c *fiber.Ctx, ref entity.ItemRef) error {
	var in dto.AddRollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	roll, err := h.stock.AddRoll(c.UserContext(), ref, inventory.AddRollInput{
		Name:       in.Name,
		SquareFeet: in.SquareFeet,
		Meters:     in.Meters,
		Unit:       in.Unit,
		MinStock:   in.MinStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(roll)
}

// ConsumeFromRoll godoc
// @Summary      Consumir de un rollo
// @Description  Rechaza (no recorta) si la cantidad supera lo que queda en la unidad pedida.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path      string                  true  "ID del ítem"
// @Param        rollId  path      string                  true  "ID del rollo"
// @Param        body    body      dto.ConsumeRollRequest  true  "amount, unit (sqft | meters)"
// @Success      200     {object}  entity.Roll
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rolls/{rollId}/consume [post]
func (h *InventoryHandler) ConsumeFromRoll(c *fiber.Ctx) error {
	var in dto.ConsumeRollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	unit := entity.MeasureUnit(in.Unit)
	if unit == "" {
		unit = entity.UnitSquareFeet
	}
	roll, err := h.stock.ConsumeFromRoll(c.UserContext(), c.Params("id"), c.Params("rollId"), in.Amount, unit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(roll)
}

// DeleteRoll godoc
// @Summary      Eliminar rollo
// @Tags         inventory
// @Param        id      path  string  true  "ID del ítem"
// @Param        rollId  path  string  true  "ID del rollo"
// @Success      204
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rolls/{rollId} [delete]
func (h *InventoryHandler) DeleteRoll(c *fiber.Ctx) error {
	if err := h.stock.DeleteRoll(c.UserContext(), c.Params("id"), c.Params("rollId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustQuantity godoc
// @Summary      Ajustar cantidad de un accesorio
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del ítem"
// @Param        body  body      dto.AdjustQuantityRequest  true  "delta (con signo), reason"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/adjust [post]
func (h *InventoryHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.stock.AdjustDiscreteQuantity(c.UserContext(), c.Params("id"), in.Delta, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// HistorySummary godoc
// @Summary      Totales de entradas y salidas del historial
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.HistorySummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/history/summary [get]
func (h *InventoryHandler) HistorySummary(c *fiber.Ctx) error {
	id := c.Params("id")
	s, err := h.stock.HistorySummary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewHistorySummaryResponse(id, s))
}

// GetLowStock godoc
// @Summary      Ítems con stock bajo
// @Description  Por rollos: a lo sumo un rollo activo. Discretos: cantidad <= stock mínimo.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	items, err := h.lowStock.GetLowStockItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": dto.NewItemList(items),
	})
}
