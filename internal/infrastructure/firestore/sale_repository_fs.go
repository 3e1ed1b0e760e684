package firestore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepoFS)(nil)

// SaleRepoFS ventas de accesorios en Firestore.
type SaleRepoFS struct {
	runner
}

// NewSaleRepositoryFS construye el repositorio fuera de transacción.
func NewSaleRepositoryFS(client *firestore.Client) *SaleRepoFS {
	return &SaleRepoFS{runner{client: client}}
}

func (r *SaleRepoFS) col() *firestore.CollectionRef {
	return r.client.Collection(salesCollection)
}

func (r *SaleRepoFS) Create(ctx context.Context, s *entity.Sale) error {
	ref := r.col().Doc(s.ID)
	var err error
	if r.tx != nil {
		err = r.tx.Create(ref, saleToData(s))
	} else {
		_, err = ref.Create(ctx, saleToData(s))
	}
	if err != nil {
		if isAlreadyExists(err) {
			return fmt.Errorf("%w: venta %s", domain.ErrDuplicate, s.ID)
		}
		return fmt.Errorf("crear venta: %w", err)
	}
	return nil
}

func (r *SaleRepoFS) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	snap, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, fmt.Errorf("leer venta: %w", err)
	}
	if snap == nil {
		return nil, nil
	}
	return saleFromData(snap.Ref.ID, snap.Data())
}

func (r *SaleRepoFS) ListByItem(ctx context.Context, itemID string) ([]*entity.Sale, error) {
	snaps, err := r.documents(ctx, r.col().Where("itemId", "==", itemID))
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]*entity.Sale, 0, len(snaps))
	for _, snap := range snaps {
		s, err := saleFromData(snap.Ref.ID, snap.Data())
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
