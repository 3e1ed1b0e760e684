package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/inventory"
)

// CreateAccessoryRequest body para POST /api/inventory/items.
type CreateAccessoryRequest struct {
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit,omitempty"`
	MinStock     int             `json:"min_stock"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int             `json:"initial_stock"`
}

// AddRollRequest body para agregar un rollo. unit y min_stock solo aplican si se crea el ítem.
type AddRollRequest struct {
	Name       string          `json:"name"`
	SquareFeet decimal.Decimal `json:"square_feet"`
	Meters     decimal.Decimal `json:"meters"`
	Unit       string          `json:"unit,omitempty"`
	MinStock   int             `json:"min_stock"`
}

// ConsumeRollRequest body para consumir de un rollo (unit: sqft | meters).
type ConsumeRollRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit"`
}

// AdjustQuantityRequest body para ajustar un accesorio (delta con signo).
type AdjustQuantityRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// CreateCategoryRequest body para POST /api/inventory/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// ResolveCategoryRequest body opcional para resolver/crear el ítem de una categoría.
type ResolveCategoryRequest struct {
	Unit     string `json:"unit,omitempty"`
	MinStock int    `json:"min_stock"`
}

// RecordSaleRequest body para POST /api/sales/accessories.
type RecordSaleRequest struct {
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int             `json:"initial_stock"`
	Unit         string          `json:"unit,omitempty"`
	MinStock     int             `json:"min_stock"`
	CustomerName string          `json:"customer_name,omitempty"`
}

// ItemResponse ítem con su evaluación de stock.
type ItemResponse struct {
	*entity.InventoryItem
	LowStock    bool            `json:"low_stock"`
	ActiveRolls int             `json:"active_rolls"`
	StockValue  decimal.Decimal `json:"stock_value"`
}

// NewItemResponse arma la respuesta de un ítem.
func NewItemResponse(item *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		InventoryItem: item,
		LowStock:      inventory.IsLowStock(item),
		ActiveRolls:   inventory.CountActiveRolls(item),
		StockValue:    inventory.StockValue(item),
	}
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NewItemList arma la respuesta de un listado.
func NewItemList(items []*entity.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemResponse(it))
	}
	return out
}

// CategoryStockResponse proyección de categoría. virtual = todavía sin ítem persistido.
type CategoryStockResponse struct {
	Name    string        `json:"name"`
	Virtual bool          `json:"virtual"`
	ItemID  string        `json:"item_id,omitempty"`
	Item    *ItemResponse `json:"item,omitempty"`
}

// NewCategoryStockResponse arma la proyección.
func NewCategoryStockResponse(cs entity.CategoryStock) CategoryStockResponse {
	out := CategoryStockResponse{Name: cs.Name, Virtual: true}
	if id, ok := cs.ItemID(); ok {
		item := NewItemResponse(cs.Item)
		out.Virtual = false
		out.ItemID = id
		out.Item = &item
	}
	return out
}

// HistorySummaryResponse totales reconstruidos del historial.
type HistorySummaryResponse struct {
	ItemID        string                        `json:"item_id"`
	TotalIn       decimal.Decimal               `json:"total_in"`
	TotalOut      decimal.Decimal               `json:"total_out"`
	Net           decimal.Decimal               `json:"net"`
	StockInCount  int                           `json:"stock_in_count"`
	StockOutCount int                           `json:"stock_out_count"`
	UnknownCount  int                           `json:"unknown_count,omitempty"`
	ByUnit        map[string]UnitTotalsResponse `json:"by_unit"`
}

// UnitTotalsResponse totales en una unidad ("" = unidades discretas).
type UnitTotalsResponse struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"`
	Net decimal.Decimal `json:"net"`
}

// NewHistorySummaryResponse arma la respuesta del resumen.
func NewHistorySummaryResponse(itemID string, s inventory.HistorySummary) HistorySummaryResponse {
	byUnit := make(map[string]UnitTotalsResponse, len(s.ByUnit))
	for unit, u := range s.ByUnit {
		byUnit[string(unit)] = UnitTotalsResponse{In: u.In, Out: u.Out, Net: u.Net()}
	}
	return HistorySummaryResponse{
		ItemID:        itemID,
		TotalIn:       s.TotalIn,
		TotalOut:      s.TotalOut,
		Net:           s.Net(),
		StockInCount:  s.StockInCount,
		StockOutCount: s.StockOutCount,
		UnknownCount:  s.UnknownCount,
		ByUnit:        byUnit,
	}
}

// SaleResponse venta registrada y estado del accesorio.
type SaleResponse struct {
	Sale *entity.Sale `json:"sale"`
	Item ItemResponse `json:"item"`
}
