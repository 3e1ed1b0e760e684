package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// StockValue valoriza el stock al precio del ítem (servicio de dominio).
// Discreto: Precio * Cantidad. Por rollos: Precio * restante en la unidad de cada rollo.
func StockValue(item *entity.InventoryItem) decimal.Decimal {
	if !item.IsRollTracked {
		return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	total := decimal.Zero
	for _, r := range item.Rolls {
		if !IsActive(r) {
			continue
		}
		total = total.Add(r.Remaining(r.DrivingUnit()))
	}
	return item.Price.Mul(total)
}
