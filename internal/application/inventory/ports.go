package inventory

import (
	"context"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el registro de ventas (venta + ajuste de stock).
// Dentro de fn todas las lecturas deben preceder a las escrituras (requisito de Firestore).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryItemRepository,
		sales repository.SaleRepository,
	) error) error
}

// LowStockCache caché de lectura para el listado de stock bajo.
// El motor la invalida después de cada escritura exitosa; cada Invalidate abre una
// generación nueva y un Set con una generación anterior nunca se sirve.
type LowStockCache interface {
	// Get devuelve ok=false si no hay entrada vigente, y la generación actual.
	Get(ctx context.Context) (items []*entity.InventoryItem, generation int64, ok bool, err error)
	// Set guarda items calculados dentro de generation.
	Set(ctx context.Context, generation int64, items []*entity.InventoryItem) error
	Invalidate(ctx context.Context) error
}
