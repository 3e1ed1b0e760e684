package repository

import (
	"context"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia de ítems de inventario (DIP).
// Cada ítem es un único documento: rollos e historial van embebidos.
type InventoryItemRepository interface {
	// Create persiste un ítem nuevo con Version = 1. Devuelve domain.ErrDuplicate si ya existe
	// un ítem por rollos para la categoría o un accesorio con la misma (categoría, nombre).
	Create(ctx context.Context, item *entity.InventoryItem) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Save escribe el ítem solo si la versión persistida coincide con item.Version
	// (domain.ErrVersionConflict si no, domain.ErrNotFound si ya no existe) e incrementa item.Version.
	Save(ctx context.Context, item *entity.InventoryItem) error
	// FindRollTrackedByCategory devuelve nil, nil si la categoría no tiene ítem.
	FindRollTrackedByCategory(ctx context.Context, category string) (*entity.InventoryItem, error)
	// FindDiscrete busca un accesorio por categoría y nombre; nil, nil si no existe.
	FindDiscrete(ctx context.Context, category, name string) (*entity.InventoryItem, error)
	ListAll(ctx context.Context) ([]*entity.InventoryItem, error)
}
