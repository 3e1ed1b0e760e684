package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// UnitTotals entradas y salidas acumuladas en una misma unidad.
type UnitTotals struct {
	In  decimal.Decimal
	Out decimal.Decimal
}

// Net entradas menos salidas.
func (u UnitTotals) Net() decimal.Decimal {
	return u.In.Sub(u.Out)
}

// HistorySummary totales reconstruidos a partir del historial.
// TotalIn/TotalOut suman todas las entradas; si un ítem mezcla rollos registrados en
// unidades distintas, ByUnit es la única lectura correcta.
type HistorySummary struct {
	TotalIn       decimal.Decimal
	TotalOut      decimal.Decimal
	StockInCount  int
	StockOutCount int
	// ByUnit clave "" = accesorios o entradas antiguas sin unidad.
	ByUnit map[entity.MeasureUnit]UnitTotals
	// UnknownCount entradas con un tipo no reconocido; no suman en ningún total.
	UnknownCount int
}

// Net entradas menos salidas.
func (s HistorySummary) Net() decimal.Decimal {
	return s.TotalIn.Sub(s.TotalOut)
}

// SummarizeHistory acumula entradas y salidas; acepta los alias IN/OUT.
func SummarizeHistory(history []entity.HistoryEntry) HistorySummary {
	s := HistorySummary{
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
		ByUnit:   make(map[entity.MeasureUnit]UnitTotals),
	}
	for _, h := range history {
		t, ok := entity.ParseHistoryType(string(h.Type))
		if !ok {
			s.UnknownCount++
			continue
		}
		u, seen := s.ByUnit[h.Unit]
		if !seen {
			u = UnitTotals{In: decimal.Zero, Out: decimal.Zero}
		}
		if t == entity.HistoryStockIn {
			s.TotalIn = s.TotalIn.Add(h.Amount)
			s.StockInCount++
			u.In = u.In.Add(h.Amount)
		} else {
			s.TotalOut = s.TotalOut.Add(h.Amount)
			s.StockOutCount++
			u.Out = u.Out.Add(h.Amount)
		}
		s.ByUnit[h.Unit] = u
	}
	return s
}
