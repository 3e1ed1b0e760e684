package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

func TestInventoryItem_JSONConservaOrdenYPrecision(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)
	rem := decimal.RequireFromString("149.333333333333")
	item := &entity.InventoryItem{
		ID: "i1", Name: "Garware Matt", Category: "Garware Matt", IsRollTracked: true,
		Price: decimal.RequireFromString("12.75"), Version: 3,
		Rolls: []entity.Roll{
			{ID: "b", Name: "R2", SquareFeet: decimal.NewFromInt(300), RemainingSqft: rem, Status: entity.RollStatusAvailable, CreatedAt: now},
			{ID: "a", Name: "R1", Meters: decimal.NewFromInt(15), RemainingMeters: decimal.Zero, Status: entity.RollStatusFinished, CreatedAt: now},
		},
		History: []entity.HistoryEntry{
			{Timestamp: now, Type: entity.HistoryStockIn, Description: "R2", Amount: decimal.NewFromInt(300), RemainingStock: &rem},
			{Timestamp: now, Type: entity.HistoryStockOut, Description: "R1", Amount: decimal.RequireFromString("0.005")},
		},
	}

	raw, err := json.Marshal(item)
	require.NoError(t, err)
	var back entity.InventoryItem
	require.NoError(t, json.Unmarshal(raw, &back))

	require.Len(t, back.Rolls, 2)
	assert.Equal(t, "b", back.Rolls[0].ID)
	assert.Equal(t, "a", back.Rolls[1].ID)
	assert.True(t, back.Rolls[0].RemainingSqft.Equal(rem))
	assert.True(t, back.Price.Equal(item.Price))
	require.Len(t, back.History, 2)
	assert.Equal(t, "R2", back.History[0].Description)
	assert.True(t, back.History[1].Amount.Equal(decimal.RequireFromString("0.005")))
	assert.True(t, back.History[0].RemainingStock.Equal(rem))
	assert.True(t, back.History[0].Timestamp.Equal(now))
}

func TestHistoryType_AliasHeredados(t *testing.T) {
	var entries []entity.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"IN","amount":"1"},{"type":"OUT","amount":"2"}]`), &entries))
	assert.Equal(t, entity.HistoryStockIn, entries[0].Type)
	assert.Equal(t, entity.HistoryStockOut, entries[1].Type)

	assert.Equal(t, entity.HistoryStockIn, entity.HistoryTypeFromString(" stock in "))
	assert.Equal(t, entity.HistoryType("AJUSTE"), entity.HistoryTypeFromString("AJUSTE"))
}

func TestInventoryItem_CloneEsProfunda(t *testing.T) {
	rem := decimal.NewFromInt(5)
	item := &entity.InventoryItem{
		Rolls:   []entity.Roll{{ID: "r1"}},
		History: []entity.HistoryEntry{{RemainingStock: &rem}},
	}
	c := item.Clone()
	c.Rolls[0].ID = "x"
	*c.History[0].RemainingStock = decimal.NewFromInt(9)
	assert.Equal(t, "r1", item.Rolls[0].ID)
	assert.True(t, item.History[0].RemainingStock.Equal(decimal.NewFromInt(5)))
}
