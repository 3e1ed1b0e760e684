package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es la unidad de persistencia y de exclusión mutua del inventario:
// rollos, cantidad e historial se escriben siempre juntos en un único documento.
//
// Si IsRollTracked es true la fuente de verdad son Rolls; si no, Quantity.
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	IsRollTracked bool            `json:"is_roll_tracked"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	MinStock      int             `json:"min_stock"`
	Price         decimal.Decimal `json:"price"`
	Rolls         []Roll          `json:"rolls"`
	History       []HistoryEntry  `json:"history"`
	// Version control optimista; la persistencia la incrementa en cada escritura exitosa.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindRoll devuelve el índice del rollo o -1.
func (i *InventoryItem) FindRoll(rollID string) int {
	for idx := range i.Rolls {
		if i.Rolls[idx].ID == rollID {
			return idx
		}
	}
	return -1
}

// Clone copia profunda; los casos de uso mutan la copia y solo la persisten si todo valida.
func (i *InventoryItem) Clone() *InventoryItem {
	if i == nil {
		return nil
	}
	out := *i
	if i.Rolls != nil {
		out.Rolls = make([]Roll, len(i.Rolls))
		copy(out.Rolls, i.Rolls)
	}
	if i.History != nil {
		out.History = make([]HistoryEntry, len(i.History))
		for k, h := range i.History {
			if h.RemainingStock != nil {
				v := *h.RemainingStock
				h.RemainingStock = &v
			}
			out.History[k] = h
		}
	}
	return &out
}

// ItemRef identifica el destino de una operación sobre rollos: un ítem ya persistido
// o una categoría que todavía puede no tener ítem.
type ItemRef struct {
	ItemID   string
	Category string
}

// RefByID referencia un ítem persistido.
func RefByID(id string) ItemRef { return ItemRef{ItemID: id} }

// RefByCategory referencia la categoría; el registro la resuelve o crea el ítem.
func RefByCategory(name string) ItemRef { return ItemRef{Category: name} }

// CategoryStock proyección de una categoría para listados. Item es nil mientras la
// categoría no tenga ítem persistido (categoría "virtual").
type CategoryStock struct {
	Name string
	Item *InventoryItem
}

// ItemID devuelve el id del ítem si la categoría ya está persistida.
func (c CategoryStock) ItemID() (string, bool) {
	if c.Item == nil {
		return "", false
	}
	return c.Item.ID, true
}
