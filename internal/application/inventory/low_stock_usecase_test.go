package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

func TestGetLowStockItems_AmbosModelos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	// Dos rollos activos: no es bajo.
	for _, name := range []string{"R1", "R2"} {
		_, err := f.stock.AddRoll(ctx, entity.RefByCategory("Garware Matt"), inventory.AddRollInput{Name: name, SquareFeet: d("100")})
		require.NoError(t, err)
	}
	// Un rollo activo: bajo.
	_, err := f.stock.AddRoll(ctx, entity.RefByCategory("Suntek"), inventory.AddRollInput{Name: "R1", SquareFeet: d("5000")})
	require.NoError(t, err)
	// Accesorios.
	_, err = f.stock.CreateAccessory(ctx, inventory.CreateAccessoryInput{Category: "Accesorios", Name: "Tape", MinStock: 5, InitialStock: 5})
	require.NoError(t, err)
	_, err = f.stock.CreateAccessory(ctx, inventory.CreateAccessoryInput{Category: "Accesorios", Name: "Cloth", MinStock: 5, InitialStock: 6})
	require.NoError(t, err)

	low, err := f.lowStock.GetLowStockItems(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(low))
	for _, it := range low {
		names = append(names, it.Name)
	}
	assert.ElementsMatch(t, []string{"Suntek", "Tape"}, names)
}

func TestGetLowStockItems_UsaCache(t *testing.T) {
	ctx := context.Background()
	cached := []*entity.InventoryItem{{ID: "x", Name: "desde caché"}}
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(cached, int64(3), true, nil).Once()
	f := newFixture(t, cache)

	got, err := f.lowStock.GetLowStockItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetLowStockItems_LlenaConLaGeneracionLeida(t *testing.T) {
	ctx := context.Background()
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(nil, int64(7), false, nil).Once()
	cache.On("Set", mock.Anything, int64(7), mock.Anything).Return(nil).Once()
	f := newFixture(t, cache)

	_, err := f.lowStock.GetLowStockItems(ctx)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestGetLowStockItems_ErrorDeCacheRecalcula(t *testing.T) {
	ctx := context.Background()
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(nil, int64(0), false, errors.New("redis caído")).Once()
	f := newFixture(t, cache)

	got, err := f.lowStock.GetLowStockItems(ctx)
	require.NoError(t, err, "la caché es opcional")
	assert.Empty(t, got)
	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
