package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de un accesorio; el descuento de stock se registra en el historial del ítem.
type Sale struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	CustomerName string          `json:"customer_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
