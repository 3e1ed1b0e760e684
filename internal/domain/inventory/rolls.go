package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppf-inventory/internal/domain"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// Epsilon por debajo del cual una medida restante se considera agotada.
var Epsilon = decimal.New(1, -2)

// IsExhausted indica si una medida restante es despreciable (<= 0.01).
func IsExhausted(v decimal.Decimal) bool {
	return v.LessThanOrEqual(Epsilon)
}

// IsFinished: ambas medidas restantes agotadas.
func IsFinished(r entity.Roll) bool {
	return IsExhausted(r.RemainingSqft) && IsExhausted(r.RemainingMeters)
}

// IsActive: rollo no terminado y con alguna medida restante útil.
func IsActive(r entity.Roll) bool {
	if r.Status == entity.RollStatusFinished {
		return false
	}
	return !IsExhausted(r.RemainingSqft) || !IsExhausted(r.RemainingMeters)
}

// NewRollInput datos para registrar un rollo.
type NewRollInput struct {
	Name       string
	SquareFeet decimal.Decimal
	Meters     decimal.Decimal
}

// AddRoll agrega un rollo con capacidad completa y su entrada StockIn.
func AddRoll(item *entity.InventoryItem, rollID string, in NewRollInput, now time.Time) (entity.Roll, error) {
	if !item.IsRollTracked {
		return entity.Roll{}, fmt.Errorf("%w: el ítem %s no maneja rollos", domain.ErrInvalidInput, item.ID)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || rollID == "" {
		return entity.Roll{}, fmt.Errorf("%w: nombre de rollo requerido", domain.ErrInvalidInput)
	}
	if in.SquareFeet.IsNegative() || in.Meters.IsNegative() {
		return entity.Roll{}, fmt.Errorf("%w: medidas negativas", domain.ErrInvalidInput)
	}
	if !in.SquareFeet.IsPositive() && !in.Meters.IsPositive() {
		return entity.Roll{}, fmt.Errorf("%w: el rollo necesita pies cuadrados o metros", domain.ErrInvalidInput)
	}

	roll := entity.Roll{
		ID:              rollID,
		Name:            name,
		Meters:          in.Meters,
		SquareFeet:      in.SquareFeet,
		RemainingMeters: in.Meters,
		RemainingSqft:   in.SquareFeet,
		Status:          entity.RollStatusAvailable,
		CreatedAt:       now,
	}
	item.Rolls = append(item.Rolls, roll)

	unit := roll.DrivingUnit()
	appendHistory(item, entity.HistoryEntry{
		Timestamp:   now,
		Type:        entity.HistoryStockIn,
		Description: roll.Name,
		Amount:      roll.Original(unit),
		Unit:        unit,
		RollID:      roll.ID,
	}, TotalRemaining(item, unit))
	return roll, nil
}

// ConsumeRoll descuenta amount (en unit) del rollo. Rechaza, no recorta, si no alcanza.
// La otra unidad se descuenta en proporción a las capacidades originales, con piso en 0.
func ConsumeRoll(item *entity.InventoryItem, rollID string, amount decimal.Decimal, unit entity.MeasureUnit, now time.Time) (entity.Roll, error) {
	if !item.IsRollTracked {
		return entity.Roll{}, fmt.Errorf("%w: el ítem %s no maneja rollos", domain.ErrInvalidInput, item.ID)
	}
	if !amount.IsPositive() || !unit.Valid() {
		return entity.Roll{}, fmt.Errorf("%w: cantidad o unidad inválida", domain.ErrInvalidInput)
	}
	idx := item.FindRoll(rollID)
	if idx < 0 {
		return entity.Roll{}, fmt.Errorf("%w: rollo %s", domain.ErrNotFound, rollID)
	}
	roll := item.Rolls[idx]
	drive := roll.DrivingUnit()
	before := roll.Remaining(drive)
	if roll.Status == entity.RollStatusFinished {
		return entity.Roll{}, fmt.Errorf("%w: rollo %s terminado", domain.ErrInsufficientStock, roll.Name)
	}
	remaining := roll.Remaining(unit)
	if amount.GreaterThan(remaining) {
		return entity.Roll{}, fmt.Errorf("%w: rollo %s tiene %s %s, se pidieron %s",
			domain.ErrInsufficientStock, roll.Name, remaining.String(), unit, amount.String())
	}

	other := entity.UnitMeters
	if unit == entity.UnitMeters {
		other = entity.UnitSquareFeet
	}
	newThis := remaining.Sub(amount)
	newOther := roll.Remaining(other)
	if origThis, origOther := roll.Original(unit), roll.Original(other); origThis.IsPositive() && origOther.IsPositive() {
		newOther = newOther.Sub(amount.Mul(origOther).Div(origThis))
		if newOther.IsNegative() {
			newOther = decimal.Zero
		}
	}
	if unit == entity.UnitMeters {
		roll.RemainingMeters, roll.RemainingSqft = newThis, newOther
	} else {
		roll.RemainingSqft, roll.RemainingMeters = newThis, newOther
	}
	if IsFinished(roll) {
		roll.Status = entity.RollStatusFinished
	}
	item.Rolls[idx] = roll

	// El historial va siempre en la unidad con la que entró el rollo.
	appendHistory(item, entity.HistoryEntry{
		Timestamp:   now,
		Type:        entity.HistoryStockOut,
		Description: roll.Name,
		Amount:      before.Sub(roll.Remaining(drive)),
		Unit:        drive,
		RollID:      roll.ID,
	}, TotalRemaining(item, drive))
	return roll, nil
}

// RemoveRoll elimina el rollo y deja constancia como salida de stock por lo que le quedaba.
func RemoveRoll(item *entity.InventoryItem, rollID string, now time.Time) (entity.Roll, error) {
	if !item.IsRollTracked {
		return entity.Roll{}, fmt.Errorf("%w: el ítem %s no maneja rollos", domain.ErrInvalidInput, item.ID)
	}
	idx := item.FindRoll(rollID)
	if idx < 0 {
		return entity.Roll{}, fmt.Errorf("%w: rollo %s", domain.ErrNotFound, rollID)
	}
	roll := item.Rolls[idx]
	item.Rolls = append(item.Rolls[:idx:idx], item.Rolls[idx+1:]...)

	unit := roll.DrivingUnit()
	appendHistory(item, entity.HistoryEntry{
		Timestamp:   now,
		Type:        entity.HistoryStockOut,
		Description: "Rollo eliminado: " + roll.Name,
		Amount:      roll.Remaining(unit),
		Unit:        unit,
		RollID:      roll.ID,
	}, TotalRemaining(item, unit))
	return roll, nil
}

// TotalRemaining suma lo que queda en todos los rollos en la unidad indicada.
func TotalRemaining(item *entity.InventoryItem, unit entity.MeasureUnit) decimal.Decimal {
	total := decimal.Zero
	for _, r := range item.Rolls {
		total = total.Add(r.Remaining(unit))
	}
	return total
}
