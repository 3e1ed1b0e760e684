package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
// El ítem completo vive en la columna doc (JSONB); category, name e is_roll_tracked se duplican
// en columnas para los índices únicos y version es la fuente de verdad del control optimista.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `version, doc`

// Create persiste un ítem nuevo con Version = 1.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	next := *item
	next.Version = 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("serializar ítem: %w", err)
	}
	query := `
		INSERT INTO inventory_items (id, category, name, is_roll_tracked, version, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		next.ID, next.Category, next.Name, next.IsRollTracked, next.Version, doc, next.CreatedAt, next.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ítem %s/%s", domain.ErrDuplicate, item.Category, item.Name)
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	item.Version = 1
	return nil
}

// GetByID obtiene un ítem por ID; nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get inventory item")
}

// Save actualiza el documento solo si la versión en BD coincide con item.Version.
func (r *ItemRepo) Save(ctx context.Context, item *entity.InventoryItem) error {
	next := *item
	next.Version = item.Version + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("serializar ítem: %w", err)
	}
	query := `
		UPDATE inventory_items
		SET category = $3, name = $4, version = version + 1, doc = $5, updated_at = $6
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query, item.ID, item.Version, next.Category, next.Name, doc, next.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ítem %s/%s", domain.ErrDuplicate, item.Category, item.Name)
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE id = $1)`, item.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check inventory item: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, item.ID)
		}
		return fmt.Errorf("%w: ítem %s versión %d", domain.ErrVersionConflict, item.ID, item.Version)
	}
	item.Version = next.Version
	return nil
}

// FindRollTrackedByCategory devuelve el ítem por rollos de la categoría o nil, nil.
func (r *ItemRepo) FindRollTrackedByCategory(ctx context.Context, category string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE category = $1 AND is_roll_tracked`
	return r.scanOne(r.q.QueryRow(ctx, query, category), "find roll item")
}

// FindDiscrete busca un accesorio por categoría y nombre.
func (r *ItemRepo) FindDiscrete(ctx context.Context, category, name string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE category = $1 AND name = $2 AND NOT is_roll_tracked`
	return r.scanOne(r.q.QueryRow(ctx, query, category, name), "find accessory")
}

// ListAll lista todos los ítems ordenados por categoría y nombre.
func (r *ItemRepo) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY category, name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		version int64
		doc     []byte
	)
	if err := row.Scan(&version, &doc); err != nil {
		return nil, err
	}
	var item entity.InventoryItem
	if err := json.Unmarshal(doc, &item); err != nil {
		return nil, fmt.Errorf("deserializar ítem: %w", err)
	}
	item.Version = version
	return &item, nil
}
