package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/inventory"
)

func TestIsLowStock_PorConteoDeRollos(t *testing.T) {
	item := rollItem()
	assert.True(t, inventory.IsLowStock(item), "sin rollos")

	_, _ = inventory.AddRoll(item, "r1", inventory.NewRollInput{Name: "R1", SquareFeet: d("5000")}, testNow)
	assert.True(t, inventory.IsLowStock(item), "un rollo grande sigue siendo bajo")

	_, _ = inventory.AddRoll(item, "r2", inventory.NewRollInput{Name: "R2", SquareFeet: d("1")}, testNow)
	assert.False(t, inventory.IsLowStock(item))
	assert.Equal(t, 2, inventory.CountActiveRolls(item))

	_, _ = inventory.ConsumeRoll(item, "r2", d("1"), entity.UnitSquareFeet, testNow)
	assert.Equal(t, 1, inventory.CountActiveRolls(item))
	assert.True(t, inventory.IsLowStock(item))
}

func TestIsLowStock_Discreto(t *testing.T) {
	item := &entity.InventoryItem{Quantity: 5, MinStock: 5}
	assert.True(t, inventory.IsLowStock(item))
	item.Quantity = 6
	assert.False(t, inventory.IsLowStock(item))
}

func TestSummarizeHistory_AceptaAliasHeredados(t *testing.T) {
	history := []entity.HistoryEntry{
		{Type: entity.HistoryStockIn, Amount: d("300")},
		{Type: "IN", Amount: d("20")},
		{Type: "OUT", Amount: d("12.5")},
		{Type: entity.HistoryStockOut, Amount: d("7.5")},
	}
	s := inventory.SummarizeHistory(history)
	assert.True(t, s.TotalIn.Equal(d("320")))
	assert.True(t, s.TotalOut.Equal(d("20")))
	assert.Equal(t, 2, s.StockInCount)
	assert.Equal(t, 2, s.StockOutCount)
	assert.True(t, s.Net().Equal(d("300")))
}

func TestSummarizeHistory_SeparaPorUnidadYCuentaDesconocidos(t *testing.T) {
	history := []entity.HistoryEntry{
		{Type: entity.HistoryStockIn, Amount: d("300"), Unit: entity.UnitSquareFeet},
		{Type: entity.HistoryStockIn, Amount: d("15"), Unit: entity.UnitMeters},
		{Type: entity.HistoryStockOut, Amount: d("100"), Unit: entity.UnitSquareFeet},
		{Type: entity.HistoryStockOut, Amount: d("5"), Unit: entity.UnitMeters},
		{Type: "AJUSTE", Amount: d("999"), Unit: entity.UnitSquareFeet},
	}
	s := inventory.SummarizeHistory(history)

	assert.Equal(t, 1, s.UnknownCount)
	assert.Equal(t, 2, s.StockInCount)
	assert.Equal(t, 2, s.StockOutCount)
	assert.True(t, s.ByUnit[entity.UnitSquareFeet].In.Equal(d("300")))
	assert.True(t, s.ByUnit[entity.UnitSquareFeet].Net().Equal(d("200")))
	assert.True(t, s.ByUnit[entity.UnitMeters].Net().Equal(d("10")))
	assert.True(t, s.TotalIn.Equal(d("315")), "el tipo desconocido no suma")
}

func TestStockValue(t *testing.T) {
	acc := &entity.InventoryItem{Quantity: 3, Price: d("100")}
	assert.True(t, inventory.StockValue(acc).Equal(d("300")))

	item := rollItem()
	item.Price = d("2")
	_, _ = inventory.AddRoll(item, "r1", inventory.NewRollInput{Name: "R1", SquareFeet: d("10")}, testNow)
	assert.True(t, inventory.StockValue(item).Equal(d("20")))
}
