package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppf-inventory/internal/application/dto"
	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// CategoryHandler registro de categorías PPF.
type CategoryHandler struct {
	registry  *inventory.CategoryRegistry
	inventory *InventoryHandler
}

// NewCategoryHandler construye el handler; reutiliza InventoryHandler para agregar rollos por categoría.
func NewCategoryHandler(registry *inventory.CategoryRegistry, inv *InventoryHandler) *CategoryHandler {
	return &CategoryHandler{registry: registry, inventory: inv}
}

// List godoc
// @Summary      Listar categorías (registradas y observadas en ítems)
// @Tags         categories
// @Produce      json
// @Success      200  {array}   string
// @Router       /api/inventory/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	names, err := h.registry.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(names)
}

// Stock godoc
// @Summary      Proyección de stock por categoría
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryStockResponse
// @Router       /api/inventory/categories/stock [get]
func (h *CategoryHandler) Stock(c *fiber.Ctx) error {
	list, err := h.registry.ListCategoryStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CategoryStockResponse, 0, len(list))
	for _, cs := range list {
		out = append(out, dto.NewCategoryStockResponse(cs))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "name"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.registry.CreateCategory(c.UserContext(), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Solo elimina el registro; el ítem de la categoría y su historial se conservan.
// @Tags         categories
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/categories/{name} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.DeleteCategory(c.UserContext(), pathParam(c, "name")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resolve godoc
// @Summary      Resolver (o crear) el ítem por rollos de una categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        name  path      string                      true   "Nombre de la categoría"
// @Param        body  body      dto.ResolveCategoryRequest  false  "unit, min_stock"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/categories/{name}/resolve [post]
func (h *CategoryHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveCategoryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	item, err := h.registry.ResolveOrCreate(c.UserContext(), pathParam(c, "name"), in.Unit, in.MinStock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// AddRoll godoc
// @Summary      Agregar rollo por categoría (crea el ítem si no existe)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        name  path      string              true  "Nombre de la categoría"
// @Param        body  body      dto.AddRollRequest  true  "name, square_feet y/o meters, unit, min_stock"
// @Success      201   {object}  entity.Roll
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/categories/{name}/rolls [post]
func (h *CategoryHandler) AddRoll(c *fiber.Ctx) error {
	return h.inventory.addRoll(c, entity.RefByCategory(pathParam(c, "name")))
}
