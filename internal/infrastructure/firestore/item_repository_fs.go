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

var _ repository.InventoryItemRepository = (*ItemRepoFS)(nil)

// ItemRepoFS ítems en Firestore. Create y Save corren en una transacción (propia o la del TxRunner)
// que lee antes de escribir: así se valida unicidad y versión de forma atómica.
type ItemRepoFS struct {
	runner
}

// NewItemRepositoryFS construye el repositorio fuera de transacción.
func NewItemRepositoryFS(client *firestore.Client) *ItemRepoFS {
	return &ItemRepoFS{runner{client: client}}
}

func (r *ItemRepoFS) col() *firestore.CollectionRef {
	return r.client.Collection(itemsCollection)
}

// Create falla con domain.ErrDuplicate si ya hay ítem por rollos en la categoría
// o accesorio con la misma (categoría, nombre).
func (r *ItemRepoFS) Create(ctx context.Context, item *entity.InventoryItem) error {
	ref := r.col().Doc(item.ID)
	err := r.run(ctx, func(tx *firestore.Transaction) error {
		q := r.col().Where("category", "==", item.Category).Where("isRollTracked", "==", item.IsRollTracked)
		if !item.IsRollTracked {
			q = q.Where("name", "==", item.Name)
		}
		snaps, err := tx.Documents(q.Limit(1)).GetAll()
		if err != nil {
			return fmt.Errorf("consultar duplicados: %w", err)
		}
		if len(snaps) > 0 {
			return fmt.Errorf("%w: ítem %s/%s", domain.ErrDuplicate, item.Category, item.Name)
		}
		next := *item
		next.Version = 1
		return tx.Create(ref, itemToData(&next))
	})
	if err != nil {
		if isAlreadyExists(err) {
			return fmt.Errorf("%w: ítem %s", domain.ErrDuplicate, item.ID)
		}
		return err
	}
	item.Version = 1
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ItemRepoFS) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	snap, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, fmt.Errorf("leer ítem %s: %w", id, err)
	}
	if snap == nil {
		return nil, nil
	}
	return itemFromData(snap.Ref.ID, snap.Data())
}

// Save lee la versión persistida, la compara con item.Version y reescribe el documento.
func (r *ItemRepoFS) Save(ctx context.Context, item *entity.InventoryItem) error {
	ref := r.col().Doc(item.ID)
	err := r.run(ctx, func(tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, item.ID)
			}
			return err
		}
		if current := fields(snap.Data()).int64("version"); current != item.Version {
			return fmt.Errorf("%w: ítem %s en versión %d, se esperaba %d",
				domain.ErrVersionConflict, item.ID, current, item.Version)
		}
		next := *item
		next.Version = item.Version + 1
		return tx.Set(ref, itemToData(&next))
	})
	if err != nil {
		return err
	}
	item.Version++
	return nil
}

// FindRollTrackedByCategory devuelve nil, nil si la categoría no tiene ítem.
func (r *ItemRepoFS) FindRollTrackedByCategory(ctx context.Context, category string) (*entity.InventoryItem, error) {
	q := r.col().Where("category", "==", category).Where("isRollTracked", "==", true).Limit(1)
	return r.first(ctx, q)
}

// FindDiscrete busca un accesorio por categoría y nombre.
func (r *ItemRepoFS) FindDiscrete(ctx context.Context, category, name string) (*entity.InventoryItem, error) {
	q := r.col().Where("category", "==", category).Where("isRollTracked", "==", false).Where("name", "==", name).Limit(1)
	return r.first(ctx, q)
}

func (r *ItemRepoFS) first(ctx context.Context, q firestore.Query) (*entity.InventoryItem, error) {
	snaps, err := r.documents(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("consultar ítems: %w", err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return itemFromData(snaps[0].Ref.ID, snaps[0].Data())
}

// ListAll ordena en memoria para no exigir índice compuesto.
func (r *ItemRepoFS) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	snaps, err := r.documents(ctx, r.col().Query)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}
	out := make([]*entity.InventoryItem, 0, len(snaps))
	for _, s := range snaps {
		it, err := itemFromData(s.Ref.ID, s.Data())
		if err != nil {
			return nil, fmt.Errorf("ítem %s: %w", s.Ref.ID, err)
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
