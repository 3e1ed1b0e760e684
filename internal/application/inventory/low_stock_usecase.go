package inventory

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

// LowStockUseCase listado de ítems con stock bajo (ambos modelos de stock).
type LowStockUseCase struct {
	items  repository.InventoryItemRepository
	cache  LowStockCache
	tracer trace.Tracer
	log    *logger.Logger
}

// NewLowStockUseCase construye el caso de uso. cache puede ser nil.
func NewLowStockUseCase(
	items repository.InventoryItemRepository,
	cache LowStockCache,
	tracer trace.Tracer,
	log *logger.Logger,
) *LowStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LowStockUseCase{items: items, cache: cache, tracer: defaultTracer(tracer), log: log.Named("low_stock")}
}

// GetLowStockItems evalúa todos los ítems; usa la caché si está vigente.
// Los errores de caché se registran y se recalcula desde el repositorio sin volver a llenarla.
func (uc *LowStockUseCase) GetLowStockItems(ctx context.Context) (out []*entity.InventoryItem, err error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.GetLowStockItems")
	defer func() { endSpan(span, err) }()

	fill := false
	var gen int64
	if uc.cache != nil {
		cached, g, ok, cerr := uc.cache.Get(ctx)
		switch {
		case cerr != nil:
			uc.log.WithTrace(ctx).Warn().Err(cerr).Msg("leer caché de stock bajo")
		case ok:
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		default:
			fill, gen = true, g
		}
	}

	all, err := uc.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]*entity.InventoryItem, 0)
	for _, it := range all {
		if inventory.IsLowStock(it) {
			out = append(out, it)
		}
	}

	// La generación se leyó antes de ListAll: si hubo una escritura entremedio, la entrada nace vencida.
	if fill {
		if err := uc.cache.Set(ctx, gen, out); err != nil {
			uc.log.WithTrace(ctx).Warn().Err(err).Msg("guardar caché de stock bajo")
		}
	}
	return out, nil
}
