package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

// CategoryRegistry mapea nombres de categoría (dinámicos, sin catálogo fijo) a ítems por rollos.
type CategoryRegistry struct {
	items      repository.InventoryItemRepository
	categories repository.CategoryRepository
	log        *logger.Logger
}

// NewCategoryRegistry construye el registro de categorías.
func NewCategoryRegistry(
	items repository.InventoryItemRepository,
	categories repository.CategoryRepository,
	log *logger.Logger,
) *CategoryRegistry {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryRegistry{items: items, categories: categories, log: log.Named("category_registry")}
}

// ResolveOrCreate devuelve el ítem por rollos de la categoría, creándolo vacío si no existe.
// Idempotente por nombre: si otro proceso lo crea primero se relee el ganador.
func (r *CategoryRegistry) ResolveOrCreate(ctx context.Context, category, unit string, minStock int) (*entity.InventoryItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: categoría requerida", domain.ErrInvalidInput)
	}
	existing, err := r.items.FindRollTrackedByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	item, err := newRollItem(category, unit, minStock)
	if err != nil {
		return nil, err
	}
	err = r.items.Create(ctx, item)
	if errors.Is(err, domain.ErrDuplicate) {
		return r.findExisting(ctx, category)
	}
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("category", category).Str("item_id", item.ID).Msg("ítem de categoría creado")
	return item, nil
}

func (r *CategoryRegistry) findExisting(ctx context.Context, category string) (*entity.InventoryItem, error) {
	item, err := r.items.FindRollTrackedByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrVersionConflict, category)
	}
	return item, nil
}

// newRollItem arma (sin persistir) el ítem por rollos de una categoría.
// unit es solo la etiqueta del ítem ("Square Feet", "Piece"...); la unidad de consumo se valida en cada consumo.
func newRollItem(category, unit string, minStock int) (*entity.InventoryItem, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = string(entity.UnitSquareFeet)
	}
	if minStock < 0 {
		return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
	}
	ts := now()
	return &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          category,
		Category:      category,
		IsRollTracked: true,
		Unit:          unit,
		MinStock:      minStock,
		Rolls:         []entity.Roll{},
		History:       []entity.HistoryEntry{},
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}, nil
}

// ListCategories unión de categorías registradas y las observadas en ítems por rollos, ordenada.
func (r *CategoryRegistry) ListCategories(ctx context.Context) ([]string, error) {
	stock, err := r.ListCategoryStock(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(stock))
	for _, s := range stock {
		names = append(names, s.Name)
	}
	return names, nil
}

// ListCategoryStock proyección por categoría; Item es nil si la categoría aún no tiene ítem.
func (r *CategoryRegistry) ListCategoryStock(ctx context.Context) ([]entity.CategoryStock, error) {
	records, err := r.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*entity.InventoryItem)
	for _, c := range records {
		byName[c.Name] = nil
	}
	for _, it := range items {
		if !it.IsRollTracked {
			continue
		}
		byName[it.Category] = it
	}

	out := make([]entity.CategoryStock, 0, len(byName))
	for name, it := range byName {
		out = append(out, entity.CategoryStock{Name: name, Item: it})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateCategory registra una categoría nueva (domain.ErrDuplicate si ya existe).
func (r *CategoryRegistry) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de categoría requerido", domain.ErrInvalidInput)
	}
	c := &entity.Category{Name: name, CreatedAt: now()}
	if err := r.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory elimina solo el registro; el ítem de la categoría, sus rollos e historial se conservan.
func (r *CategoryRegistry) DeleteCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: nombre de categoría requerido", domain.ErrInvalidInput)
	}
	if err := r.categories.Delete(ctx, name); err != nil {
		return err
	}
	if item, err := r.items.FindRollTrackedByCategory(ctx, name); err == nil && item != nil {
		r.log.Warn().Str("category", name).Str("item_id", item.ID).
			Msg("categoría eliminada; el ítem queda accesible solo por id")
	}
	return nil
}
