package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo registro de categorías en memoria.
type CategoryRepo struct {
	store *Store
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.store.access(nil, func(st *state) error {
		if _, ok := st.categories[category.Name]; ok {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, category.Name)
		}
		c := *category
		st.categories[c.Name] = &c
		return nil
	})
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.store.access(nil, func(st *state) error {
		if c, ok := st.categories[name]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.store.access(nil, func(st *state) error {
		out = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CategoryRepo) Delete(ctx context.Context, name string) error {
	return r.store.access(nil, func(st *state) error {
		if _, ok := st.categories[name]; !ok {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, name)
		}
		delete(st.categories, name)
		return nil
	})
}
