package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

// StockUseCase motor de mutaciones de stock: único escritor de rollos, cantidad e historial.
// Cada operación carga el ítem, valida y muta una copia, y la persiste en una sola escritura
// condicionada a la versión leída. Un error deja el ítem persistido intacto.
type StockUseCase struct {
	items  repository.InventoryItemRepository
	cache  LowStockCache
	tracer trace.Tracer
	log    *logger.Logger
}

// NewStockUseCase construye el motor. cache puede ser nil; tracer nil usa el proveedor global.
func NewStockUseCase(
	items repository.InventoryItemRepository,
	cache LowStockCache,
	tracer trace.Tracer,
	log *logger.Logger,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		items:  items,
		cache:  cache,
		tracer: defaultTracer(tracer),
		log:    log.Named("stock"),
	}
}

// AddRollInput datos de un rollo nuevo. Unit y MinStock solo aplican si se crea el ítem.
type AddRollInput struct {
	Name       string
	SquareFeet decimal.Decimal
	Meters     decimal.Decimal
	Unit       string
	MinStock   int
}

// AddRoll agrega un rollo al ítem referenciado. Si la referencia es por categoría y no hay ítem,
// se crea con el rollo y su entrada de historial en la misma escritura.
func (uc *StockUseCase) AddRoll(ctx context.Context, ref entity.ItemRef, in AddRollInput) (roll entity.Roll, err error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.AddRoll", trace.WithAttributes(
		attribute.String("item.id", ref.ItemID),
		attribute.String("item.category", ref.Category),
	))
	defer func() { endSpan(span, err) }()

	var item *entity.InventoryItem
	category := strings.TrimSpace(ref.Category)
	switch {
	case ref.ItemID != "":
		item, err = uc.load(ctx, ref.ItemID)
		if err != nil {
			return entity.Roll{}, err
		}
	case category != "":
		item, err = uc.items.FindRollTrackedByCategory(ctx, category)
		if err != nil {
			return entity.Roll{}, err
		}
	default:
		return entity.Roll{}, fmt.Errorf("%w: se requiere id de ítem o categoría", domain.ErrInvalidInput)
	}

	isNew := item == nil
	if isNew {
		item, err = newRollItem(category, in.Unit, in.MinStock)
		if err != nil {
			return entity.Roll{}, err
		}
	} else {
		item = item.Clone()
	}

	roll, err = inventory.AddRoll(item, uuid.New().String(), inventory.NewRollInput{
		Name:       in.Name,
		SquareFeet: in.SquareFeet,
		Meters:     in.Meters,
	}, now())
	if err != nil {
		return entity.Roll{}, err
	}

	if isNew {
		err = uc.items.Create(ctx, item)
		if errors.Is(err, domain.ErrDuplicate) {
			// Otro proceso creó el ítem de la categoría entre la lectura y la escritura.
			err = fmt.Errorf("%w: la categoría %s fue creada concurrentemente", domain.ErrVersionConflict, category)
		}
	} else {
		err = uc.items.Save(ctx, item)
	}
	if err != nil {
		return entity.Roll{}, err
	}
	uc.afterWrite(ctx, item, "rollo agregado")
	return roll, nil
}

// ConsumeFromRoll descuenta amount (en unit) de un rollo. Rechaza si no alcanza.
func (uc *StockUseCase) ConsumeFromRoll(ctx context.Context, itemID, rollID string, amount decimal.Decimal, unit entity.MeasureUnit) (entity.Roll, error) {
	var roll entity.Roll
	_, err := uc.mutate(ctx, "inventory.ConsumeFromRoll", itemID, func(item *entity.InventoryItem, ts time.Time) error {
		var err error
		roll, err = inventory.ConsumeRoll(item, rollID, amount, unit, ts)
		return err
	}, attribute.String("roll.id", rollID), attribute.String("amount", amount.String()))
	if err != nil {
		return entity.Roll{}, err
	}
	return roll, nil
}

// DeleteRoll elimina el rollo y registra la salida de lo que le quedaba.
func (uc *StockUseCase) DeleteRoll(ctx context.Context, itemID, rollID string) error {
	_, err := uc.mutate(ctx, "inventory.DeleteRoll", itemID, func(item *entity.InventoryItem, ts time.Time) error {
		_, err := inventory.RemoveRoll(item, rollID, ts)
		return err
	}, attribute.String("roll.id", rollID))
	return err
}

// AdjustDiscreteQuantity suma delta a la cantidad de un accesorio; nunca deja stock negativo.
func (uc *StockUseCase) AdjustDiscreteQuantity(ctx context.Context, itemID string, delta int, reason string) (*entity.InventoryItem, error) {
	return uc.mutate(ctx, "inventory.AdjustDiscreteQuantity", itemID, func(item *entity.InventoryItem, ts time.Time) error {
		return inventory.AdjustQuantity(item, delta, reason, ts)
	}, attribute.Int("delta", delta))
}

// CreateAccessoryInput alta de un accesorio (stock discreto).
type CreateAccessoryInput struct {
	Category     string
	Name         string
	Unit         string
	MinStock     int
	Price        decimal.Decimal
	InitialStock int
}

// CreateAccessory crea un ítem discreto; si InitialStock > 0 queda registrado como entrada.
func (uc *StockUseCase) CreateAccessory(ctx context.Context, in CreateAccessoryInput) (item *entity.InventoryItem, err error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.CreateAccessory", trace.WithAttributes(
		attribute.String("item.category", in.Category),
		attribute.String("item.name", in.Name),
	))
	defer func() { endSpan(span, err) }()

	item, err = newAccessoryItem(in, now())
	if err != nil {
		return nil, err
	}
	if err = uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.afterWrite(ctx, item, "accesorio creado")
	return item, nil
}

// GetItem devuelve el ítem o domain.ErrNotFound.
func (uc *StockUseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return uc.load(ctx, id)
}

// ListItems lista todos los ítems.
func (uc *StockUseCase) ListItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.items.ListAll(ctx)
}

// HistorySummary totales de entradas/salidas reconstruidos desde el historial del ítem.
func (uc *StockUseCase) HistorySummary(ctx context.Context, id string) (inventory.HistorySummary, error) {
	item, err := uc.load(ctx, id)
	if err != nil {
		return inventory.HistorySummary{}, err
	}
	return inventory.SummarizeHistory(item.History), nil
}

func (uc *StockUseCase) load(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id de ítem requerido", domain.ErrInvalidInput)
	}
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return item, nil
}

// mutate carga el ítem, aplica fn sobre una copia y la guarda condicionada a la versión leída.
func (uc *StockUseCase) mutate(
	ctx context.Context,
	op, itemID string,
	fn func(item *entity.InventoryItem, ts time.Time) error,
	attrs ...attribute.KeyValue,
) (item *entity.InventoryItem, err error) {
	attrs = append(attrs, attribute.String("item.id", itemID))
	ctx, span := uc.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	defer func() { endSpan(span, err) }()

	current, err := uc.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	work := current.Clone()
	if err = fn(work, now()); err != nil {
		return nil, err
	}
	if err = uc.items.Save(ctx, work); err != nil {
		return nil, err
	}
	uc.afterWrite(ctx, work, op)
	return work, nil
}

// afterWrite invalida la caché de stock bajo; un fallo aquí no revierte la escritura.
func (uc *StockUseCase) afterWrite(ctx context.Context, item *entity.InventoryItem, msg string) {
	uc.log.Debug().Str("item_id", item.ID).Int64("version", item.Version).Msg(msg)
	invalidateLowStock(ctx, uc.cache, uc.log)
}

func invalidateLowStock(ctx context.Context, cache LowStockCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.WithTrace(ctx).Warn().Err(err).Msg("invalidar caché de stock bajo")
	}
}

// newAccessoryItem arma (sin persistir) un ítem discreto con su stock inicial.
func newAccessoryItem(in CreateAccessoryInput, ts time.Time) (*entity.InventoryItem, error) {
	category := strings.TrimSpace(in.Category)
	name := strings.TrimSpace(in.Name)
	if category == "" || name == "" {
		return nil, fmt.Errorf("%w: categoría y nombre requeridos", domain.ErrInvalidInput)
	}
	if in.MinStock < 0 || in.InitialStock < 0 || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: valores negativos", domain.ErrInvalidInput)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "unidad"
	}
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Unit:      unit,
		MinStock:  in.MinStock,
		Price:     in.Price,
		Rolls:     []entity.Roll{},
		History:   []entity.HistoryEntry{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if in.InitialStock > 0 {
		if err := inventory.AdjustQuantity(item, in.InitialStock, "Stock inicial", ts); err != nil {
			return nil, err
		}
	}
	return item, nil
}
