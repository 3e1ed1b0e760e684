package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

// mockCache doble de LowStockCache con testify/mock.
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context) ([]*entity.InventoryItem, int64, bool, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*entity.InventoryItem)
	return items, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *mockCache) Set(ctx context.Context, generation int64, items []*entity.InventoryItem) error {
	return m.Called(ctx, generation, items).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	store    *memory.Store
	stock    *inventory.StockUseCase
	lowStock *inventory.LowStockUseCase
	registry *inventory.CategoryRegistry
	sales    *inventory.RecordSaleUseCase
}

// newFixture arma los casos de uso sobre el store en memoria. cache puede ser nil.
func newFixture(t *testing.T, cache inventory.LowStockCache) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	return &fixture{
		store:    store,
		stock:    inventory.NewStockUseCase(store.Items(), cache, nil, log),
		lowStock: inventory.NewLowStockUseCase(store.Items(), cache, nil, log),
		registry: inventory.NewCategoryRegistry(store.Items(), store.Categories(), log),
		sales:    inventory.NewRecordSaleUseCase(store.TxRunner(), cache, nil, log),
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
