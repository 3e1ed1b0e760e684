package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppf-inventory/internal/application/dto"
	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
)

// SaleHandler ventas de accesorios.
type SaleHandler struct {
	uc *inventory.RecordSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.RecordSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// RecordAccessorySale godoc
// @Summary      Registrar venta de accesorio
// @Description  Crea el accesorio con initial_stock si no existe, registra la venta y descuenta stock
// @Description  en una sola transacción. Si no alcanza el stock no se persiste nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordSaleRequest  true  "category, name, quantity, unit_price, initial_stock"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/accessories [post]
func (h *SaleHandler) RecordAccessorySale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.RecordAccessorySale(c.UserContext(), inventory.RecordSaleInput{
		Category:     in.Category,
		Name:         in.Name,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		InitialStock: in.InitialStock,
		Unit:         in.Unit,
		MinStock:     in.MinStock,
		CustomerName: in.CustomerName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{Sale: res.Sale, Item: dto.NewItemResponse(res.Item)})
}
