package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

func TestResolveOrCreate_Idempotente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	a, err := f.registry.ResolveOrCreate(ctx, "Garware Matt", "sqft", 1)
	require.NoError(t, err)
	b, err := f.registry.ResolveOrCreate(ctx, "Garware Matt", "meters", 9)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "sqft", b.Unit, "la segunda llamada no altera el ítem")

	_, err = f.registry.ResolveOrCreate(ctx, "  ", "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.registry.ResolveOrCreate(ctx, "Otra", "", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveOrCreate_UnidadEsEtiquetaLibre(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	item, err := f.registry.ResolveOrCreate(ctx, "Garware Matt", "  Square Feet ", 2)
	require.NoError(t, err)
	assert.Equal(t, "Square Feet", item.Unit)
	assert.Equal(t, 2, item.MinStock)

	_, err = f.stock.AddRoll(ctx, entity.RefByCategory("Suntek"), inventory.AddRollInput{
		Name: "R1", SquareFeet: d("100"), Unit: "Piece",
	})
	require.NoError(t, err)
	suntek, err := f.store.Items().FindRollTrackedByCategory(ctx, "Suntek")
	require.NoError(t, err)
	require.NotNil(t, suntek)
	assert.Equal(t, "Piece", suntek.Unit)

	// Sin etiqueta se usa sqft.
	gloss, err := f.registry.ResolveOrCreate(ctx, "Garware Gloss", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "sqft", gloss.Unit)
}

func TestListCategories_UnionSinDuplicados(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.registry.CreateCategory(ctx, "Xpel Ultimate")
	require.NoError(t, err)
	_, err = f.registry.CreateCategory(ctx, "Garware Matt")
	require.NoError(t, err)
	_, err = f.registry.CreateCategory(ctx, "Garware Matt")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Ítem creado sin registro formal de categoría.
	_, err = f.stock.AddRoll(ctx, entity.RefByCategory("Suntek"), inventory.AddRollInput{Name: "R1", SquareFeet: d("50")})
	require.NoError(t, err)
	_, err = f.stock.AddRoll(ctx, entity.RefByCategory("Garware Matt"), inventory.AddRollInput{Name: "R1", SquareFeet: d("50")})
	require.NoError(t, err)
	// Los accesorios no aportan categorías de rollos.
	_, err = f.stock.CreateAccessory(ctx, inventory.CreateAccessoryInput{Category: "Accesorios", Name: "Tape"})
	require.NoError(t, err)

	names, err := f.registry.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Garware Matt", "Suntek", "Xpel Ultimate"}, names)

	stock, err := f.registry.ListCategoryStock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 3)
	_, persisted := stock[0].ItemID()
	assert.True(t, persisted)
	_, persisted = stock[2].ItemID()
	assert.False(t, persisted, "Xpel Ultimate es virtual: no tiene ítem")
	assert.Nil(t, stock[2].Item)
}

func TestDeleteCategory_NoBorraElItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.registry.CreateCategory(ctx, "Garware Matt")
	require.NoError(t, err)
	roll, err := f.stock.AddRoll(ctx, entity.RefByCategory("Garware Matt"), inventory.AddRollInput{Name: "R1", SquareFeet: d("50")})
	require.NoError(t, err)

	require.NoError(t, f.registry.DeleteCategory(ctx, "Garware Matt"))
	assert.ErrorIs(t, f.registry.DeleteCategory(ctx, "Garware Matt"), domain.ErrNotFound)

	item, err := f.store.Items().FindRollTrackedByCategory(ctx, "Garware Matt")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, roll.ID, item.Rolls[0].ID)
	assert.Len(t, item.History, 1)
}
