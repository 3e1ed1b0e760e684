package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// AdjustQuantity aplica delta a un accesorio (cantidad discreta). Nunca deja stock negativo.
func AdjustQuantity(item *entity.InventoryItem, delta int, reason string, now time.Time) error {
	if item.IsRollTracked {
		return fmt.Errorf("%w: el ítem %s se maneja por rollos", domain.ErrInvalidInput, item.ID)
	}
	if delta == 0 {
		return fmt.Errorf("%w: delta debe ser distinto de cero", domain.ErrInvalidInput)
	}
	next := item.Quantity + delta
	if next < 0 {
		return fmt.Errorf("%w: %s tiene %d, se pidieron %d", domain.ErrInsufficientStock, item.Name, item.Quantity, -delta)
	}
	item.Quantity = next

	entry := entity.HistoryEntry{
		Timestamp:   now,
		Type:        entity.HistoryStockIn,
		Description: strings.TrimSpace(reason),
		Amount:      decimal.NewFromInt(int64(delta)),
	}
	if delta < 0 {
		entry.Type = entity.HistoryStockOut
		entry.Amount = entry.Amount.Neg()
	}
	if entry.Description == "" {
		entry.Description = item.Name
	}
	appendHistory(item, entry, decimal.NewFromInt(int64(next)))
	return nil
}

func appendHistory(item *entity.InventoryItem, entry entity.HistoryEntry, remaining decimal.Decimal) {
	entry.RemainingStock = &remaining
	item.History = append(item.History, entry)
	item.UpdatedAt = entry.Timestamp
}
