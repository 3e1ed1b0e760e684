package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas de accesorios en memoria.
type SaleRepo struct {
	store *Store
	tx    *state
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.store.access(r.tx, func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return fmt.Errorf("%w: venta %s", domain.ErrDuplicate, sale.ID)
		}
		s := *sale
		st.sales[s.ID] = &s
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.store.access(r.tx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			cp := *s
			out = &cp
		}
		return nil
	})
	return out, err
}

// ListByItem ventas del ítem en orden cronológico.
func (r *SaleRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	err := r.store.access(r.tx, func(st *state) error {
		for _, s := range st.sales {
			if s.ItemID == itemID {
				cp := *s
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}
