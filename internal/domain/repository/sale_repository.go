package repository

import (
	"context"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas de accesorios.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.Sale, error)
}
