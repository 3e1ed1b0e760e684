package inventory

import (
	"context"
	"fmt"
	"strings"

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

// RecordSaleUseCase registra ventas de accesorios descontando stock en la misma transacción.
type RecordSaleUseCase struct {
	txRunner TxRunner
	cache    LowStockCache
	tracer   trace.Tracer
	log      *logger.Logger
}

// NewRecordSaleUseCase construye el caso de uso. cache puede ser nil.
func NewRecordSaleUseCase(txRunner TxRunner, cache LowStockCache, tracer trace.Tracer, log *logger.Logger) *RecordSaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordSaleUseCase{txRunner: txRunner, cache: cache, tracer: defaultTracer(tracer), log: log.Named("sales")}
}

// RecordSaleInput venta de un accesorio identificado por (categoría, nombre).
// InitialStock, Unit y MinStock se usan solo si el accesorio todavía no existe.
type RecordSaleInput struct {
	Category     string
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	InitialStock int
	Unit         string
	MinStock     int
	CustomerName string
}

// SaleResult venta persistida y estado del accesorio después del descuento.
type SaleResult struct {
	Sale *entity.Sale
	Item *entity.InventoryItem
}

// RecordAccessorySale en una sola transacción: busca o arma el accesorio con su stock inicial,
// descuenta la cantidad y persiste la venta. Si no alcanza el stock la venta falla y no se persiste nada.
func (uc *RecordSaleUseCase) RecordAccessorySale(ctx context.Context, in RecordSaleInput) (res *SaleResult, err error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.RecordAccessorySale", trace.WithAttributes(
		attribute.String("item.category", in.Category),
		attribute.String("item.name", in.Name),
		attribute.Int("quantity", in.Quantity),
	))
	defer func() { endSpan(span, err) }()

	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad vendida debe ser positiva", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}

	err = uc.txRunner.Run(ctx, func(items repository.InventoryItemRepository, sales repository.SaleRepository) error {
		ts := now()
		existing, err := items.FindDiscrete(ctx, strings.TrimSpace(in.Category), strings.TrimSpace(in.Name))
		if err != nil {
			return err
		}

		var item *entity.InventoryItem
		if existing != nil {
			item = existing.Clone()
		} else {
			item, err = newAccessoryItem(CreateAccessoryInput{
				Category:     in.Category,
				Name:         in.Name,
				Unit:         in.Unit,
				MinStock:     in.MinStock,
				Price:        in.UnitPrice,
				InitialStock: in.InitialStock,
			}, ts)
			if err != nil {
				return err
			}
		}

		reason := "Venta"
		if c := strings.TrimSpace(in.CustomerName); c != "" {
			reason = "Venta: " + c
		}
		if err := inventory.AdjustQuantity(item, -in.Quantity, reason, ts); err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			Category:     item.Category,
			Name:         item.Name,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Total:        in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CustomerName: strings.TrimSpace(in.CustomerName),
			CreatedAt:    ts,
		}
		// Ítem antes que venta: los repos transaccionales leen antes de escribir.
		if existing != nil {
			err = items.Save(ctx, item)
		} else {
			err = items.Create(ctx, item)
		}
		if err != nil {
			return err
		}
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		res = &SaleResult{Sale: sale, Item: item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", res.Sale.ID).Str("item_id", res.Item.ID).
		Int("quantity", in.Quantity).Int("remaining", res.Item.Quantity).Msg("venta registrada")
	invalidateLowStock(ctx, uc.cache, uc.log)
	return res, nil
}
