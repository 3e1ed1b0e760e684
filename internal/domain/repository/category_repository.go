package repository

import (
	"context"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para el registro de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete elimina solo el registro; los ítems de la categoría no se tocan.
	Delete(ctx context.Context, name string) error
}
