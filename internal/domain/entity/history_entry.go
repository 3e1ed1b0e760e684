package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryType tipo de movimiento registrado en el historial de un ítem.
type HistoryType string

const (
	HistoryStockIn  HistoryType = "StockIn"
	HistoryStockOut HistoryType = "StockOut"
)

// ParseHistoryType normaliza el tipo aceptando los alias heredados IN/OUT.
func ParseHistoryType(s string) (HistoryType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STOCKIN", "STOCK IN", "IN":
		return HistoryStockIn, true
	case "STOCKOUT", "STOCK OUT", "OUT":
		return HistoryStockOut, true
	}
	return "", false
}

// UnmarshalJSON acepta documentos antiguos que guardaban "IN"/"OUT".
func (t *HistoryType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = HistoryTypeFromString(s)
	return nil
}

// HistoryTypeFromString normaliza los alias conocidos y conserva tal cual un valor desconocido.
func HistoryTypeFromString(s string) HistoryType {
	if parsed, ok := ParseHistoryType(s); ok {
		return parsed
	}
	return HistoryType(s)
}

// HistoryEntry movimiento de stock. Amount siempre sin signo; el signo lo da Type.
// En ítems por rollos Unit es la unidad de Amount (la unidad con la que entró el rollo);
// en accesorios va vacía y Amount son unidades discretas.
// RemainingStock es solo para auditoría, no representa el estado actual.
type HistoryEntry struct {
	Timestamp      time.Time        `json:"timestamp"`
	Type           HistoryType      `json:"type"`
	Description    string           `json:"description"`
	Amount         decimal.Decimal  `json:"amount"`
	Unit           MeasureUnit      `json:"unit,omitempty"`
	RemainingStock *decimal.Decimal `json:"remaining_stock,omitempty"`
	RollID         string           `json:"roll_id,omitempty"`
}
