package inventory

import "github.com/jhoicas/ppf-inventory/internal/domain/entity"

// CountActiveRolls cuenta los rollos activos del ítem.
func CountActiveRolls(item *entity.InventoryItem) int {
	n := 0
	for _, r := range item.Rolls {
		if IsActive(r) {
			n++
		}
	}
	return n
}

// IsLowStock heurística por modelo de stock: por rollos, a lo sumo un rollo activo
// (sin importar cuánto le quede); discreto, cantidad <= MinStock.
func IsLowStock(item *entity.InventoryItem) bool {
	if item.IsRollTracked {
		return CountActiveRolls(item) <= 1
	}
	return item.Quantity <= item.MinStock
}
