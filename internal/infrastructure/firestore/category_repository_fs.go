package firestore

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepoFS)(nil)

// CategoryRepoFS registro de categorías; el id del documento es el nombre escapado.
type CategoryRepoFS struct {
	client *firestore.Client
}

// NewCategoryRepositoryFS construye el repositorio.
func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepoFS {
	return &CategoryRepoFS{client: client}
}

// categoryDocID los ids de documento no admiten "/".
func categoryDocID(name string) string {
	return url.PathEscape(name)
}

func (r *CategoryRepoFS) doc(name string) *firestore.DocumentRef {
	return r.client.Collection(categoriesCollection).Doc(categoryDocID(name))
}

func (r *CategoryRepoFS) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.doc(c.Name).Create(ctx, map[string]any{"name": c.Name, "createdAt": c.CreatedAt})
	if err != nil {
		if isAlreadyExists(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
		}
		return fmt.Errorf("crear categoría: %w", err)
	}
	return nil
}

func (r *CategoryRepoFS) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	snap, err := r.doc(name).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer categoría: %w", err)
	}
	d := fields(snap.Data())
	return &entity.Category{Name: d.str("name"), CreatedAt: d.time("createdAt")}, nil
}

func (r *CategoryRepoFS) List(ctx context.Context) ([]*entity.Category, error) {
	it := r.client.Collection(categoriesCollection).Documents(ctx)
	defer it.Stop()

	out := make([]*entity.Category, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listar categorías: %w", err)
		}
		d := fields(snap.Data())
		out = append(out, &entity.Category{Name: d.str("name"), CreatedAt: d.time("createdAt")})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete solo borra el registro; los ítems de la categoría se conservan.
func (r *CategoryRepoFS) Delete(ctx context.Context, name string) error {
	_, err := r.doc(name).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, name)
		}
		return fmt.Errorf("eliminar categoría: %w", err)
	}
	return nil
}
