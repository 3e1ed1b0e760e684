package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo guarda copias profundas: nada de lo que recibe o devuelve comparte memoria con el store.
type ItemRepo struct {
	store *Store
	tx    *state
}

// Create persiste un ítem nuevo con Version = 1.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.store.access(r.tx, func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return fmt.Errorf("%w: ítem %s", domain.ErrDuplicate, item.ID)
		}
		for _, other := range st.items {
			if conflicts(other, item) {
				return fmt.Errorf("%w: ítem %s/%s", domain.ErrDuplicate, item.Category, item.Name)
			}
		}
		item.Version = 1
		st.items[item.ID] = item.Clone()
		return nil
	})
}

// conflicts replica los índices únicos de la tabla: una fila por rollos por categoría
// y un accesorio por (categoría, nombre).
func conflicts(a, b *entity.InventoryItem) bool {
	if a.Category != b.Category || a.IsRollTracked != b.IsRollTracked {
		return false
	}
	return a.IsRollTracked || a.Name == b.Name
}

// GetByID devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.store.access(r.tx, func(st *state) error {
		out = st.items[id].Clone()
		return nil
	})
	return out, err
}

// Save escribe si la versión coincide e incrementa item.Version.
func (r *ItemRepo) Save(ctx context.Context, item *entity.InventoryItem) error {
	return r.store.access(r.tx, func(st *state) error {
		current, ok := st.items[item.ID]
		if !ok {
			return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, item.ID)
		}
		if current.Version != item.Version {
			return fmt.Errorf("%w: ítem %s en versión %d, se esperaba %d",
				domain.ErrVersionConflict, item.ID, current.Version, item.Version)
		}
		item.Version++
		st.items[item.ID] = item.Clone()
		return nil
	})
}

// FindRollTrackedByCategory devuelve nil, nil si la categoría no tiene ítem por rollos.
func (r *ItemRepo) FindRollTrackedByCategory(ctx context.Context, category string) (*entity.InventoryItem, error) {
	return r.find(func(it *entity.InventoryItem) bool {
		return it.IsRollTracked && it.Category == category
	})
}

// FindDiscrete busca un accesorio por categoría y nombre.
func (r *ItemRepo) FindDiscrete(ctx context.Context, category, name string) (*entity.InventoryItem, error) {
	return r.find(func(it *entity.InventoryItem) bool {
		return !it.IsRollTracked && it.Category == category && it.Name == name
	})
}

func (r *ItemRepo) find(match func(*entity.InventoryItem) bool) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.store.access(r.tx, func(st *state) error {
		for _, it := range st.items {
			if match(it) {
				out = it.Clone()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListAll ordenado por categoría, nombre e id.
func (r *ItemRepo) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.store.access(r.tx, func(st *state) error {
		out = make([]*entity.InventoryItem, 0, len(st.items))
		for _, it := range st.items {
			out = append(out, it.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, err
}
