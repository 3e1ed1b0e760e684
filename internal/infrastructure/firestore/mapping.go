package firestore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// Los decimales se guardan como string: los números de Firestore son float64 y perderían precisión.

func itemToData(it *entity.InventoryItem) map[string]any {
	rolls := make([]any, 0, len(it.Rolls))
	for _, r := range it.Rolls {
		rolls = append(rolls, map[string]any{
			"id":              r.ID,
			"name":            r.Name,
			"meters":          r.Meters.String(),
			"squareFeet":      r.SquareFeet.String(),
			"remainingMeters": r.RemainingMeters.String(),
			"remainingSqft":   r.RemainingSqft.String(),
			"status":          string(r.Status),
			"createdAt":       r.CreatedAt,
		})
	}
	history := make([]any, 0, len(it.History))
	for _, h := range it.History {
		m := map[string]any{
			"timestamp":   h.Timestamp,
			"type":        string(h.Type),
			"description": h.Description,
			"amount":      h.Amount.String(),
		}
		if h.RemainingStock != nil {
			m["remainingStock"] = h.RemainingStock.String()
		}
		if h.RollID != "" {
			m["rollId"] = h.RollID
		}
		if h.Unit != "" {
			m["unit"] = string(h.Unit)
		}
		history = append(history, m)
	}
	return map[string]any{
		"id":            it.ID,
		"name":          it.Name,
		"category":      it.Category,
		"isRollTracked": it.IsRollTracked,
		"quantity":      int64(it.Quantity),
		"unit":          it.Unit,
		"minStock":      int64(it.MinStock),
		"price":         it.Price.String(),
		"rolls":         rolls,
		"history":       history,
		"version":       it.Version,
		"createdAt":     it.CreatedAt,
		"updatedAt":     it.UpdatedAt,
	}
}

func itemFromData(id string, raw map[string]any) (*entity.InventoryItem, error) {
	d := fields(raw)
	it := &entity.InventoryItem{
		ID:            id,
		Name:          d.str("name"),
		Category:      d.str("category"),
		IsRollTracked: d.boolean("isRollTracked"),
		Quantity:      int(d.int64("quantity")),
		Unit:          d.str("unit"),
		MinStock:      int(d.int64("minStock")),
		Version:       d.int64("version"),
		CreatedAt:     d.time("createdAt"),
		UpdatedAt:     d.time("updatedAt"),
		Rolls:         []entity.Roll{},
		History:       []entity.HistoryEntry{},
	}
	var err error
	if it.Price, err = d.decimal("price"); err != nil {
		return nil, err
	}

	for _, v := range d.list("rolls") {
		rd := fields(asMap(v))
		r := entity.Roll{
			ID:        rd.str("id"),
			Name:      rd.str("name"),
			Status:    entity.RollStatus(rd.str("status")),
			CreatedAt: rd.time("createdAt"),
		}
		for key, dst := range map[string]*decimal.Decimal{
			"meters":          &r.Meters,
			"squareFeet":      &r.SquareFeet,
			"remainingMeters": &r.RemainingMeters,
			"remainingSqft":   &r.RemainingSqft,
		} {
			if *dst, err = rd.decimal(key); err != nil {
				return nil, err
			}
		}
		it.Rolls = append(it.Rolls, r)
	}

	for _, v := range d.list("history") {
		hd := fields(asMap(v))
		h := entity.HistoryEntry{
			Timestamp:   hd.time("timestamp"),
			Type:        entity.HistoryTypeFromString(hd.str("type")),
			Description: hd.str("description"),
			Unit:        entity.MeasureUnit(hd.str("unit")),
			RollID:      hd.str("rollId"),
		}
		if h.Amount, err = hd.decimal("amount"); err != nil {
			return nil, err
		}
		if _, ok := hd["remainingStock"]; ok {
			rs, err := hd.decimal("remainingStock")
			if err != nil {
				return nil, err
			}
			h.RemainingStock = &rs
		}
		it.History = append(it.History, h)
	}
	return it, nil
}

func saleToData(s *entity.Sale) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"itemId":       s.ItemID,
		"category":     s.Category,
		"name":         s.Name,
		"quantity":     int64(s.Quantity),
		"unitPrice":    s.UnitPrice.String(),
		"total":        s.Total.String(),
		"customerName": s.CustomerName,
		"createdAt":    s.CreatedAt,
	}
}

func saleFromData(id string, raw map[string]any) (*entity.Sale, error) {
	d := fields(raw)
	s := &entity.Sale{
		ID:           id,
		ItemID:       d.str("itemId"),
		Category:     d.str("category"),
		Name:         d.str("name"),
		Quantity:     int(d.int64("quantity")),
		CustomerName: d.str("customerName"),
		CreatedAt:    d.time("createdAt"),
	}
	var err error
	if s.UnitPrice, err = d.decimal("unitPrice"); err != nil {
		return nil, err
	}
	if s.Total, err = d.decimal("total"); err != nil {
		return nil, err
	}
	return s, nil
}

// fields lectura tolerante de los tipos que devuelve Firestore.
type fields map[string]any

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func (f fields) str(k string) string {
	s, _ := f[k].(string)
	return s
}

func (f fields) boolean(k string) bool {
	b, _ := f[k].(bool)
	return b
}

func (f fields) int64(k string) int64 {
	switch v := f[k].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func (f fields) time(k string) time.Time {
	t, _ := f[k].(time.Time)
	return t.UTC()
}

func (f fields) list(k string) []any {
	l, _ := f[k].([]any)
	return l
}

func (f fields) decimal(k string) (decimal.Decimal, error) {
	switch v := f[k].(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		if v == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("campo %s: %w", k, err)
		}
		return d, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return decimal.Zero, fmt.Errorf("campo %s: tipo %T no soportado", k, f[k])
}
