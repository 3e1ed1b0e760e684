package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RollStatus estado de un rollo. Se guarda junto al rollo pero se deriva de los restantes.
type RollStatus string

const (
	RollStatusAvailable RollStatus = "Available"
	RollStatusFinished  RollStatus = "Finished"
)

// MeasureUnit unidad en la que se consume un rollo.
type MeasureUnit string

const (
	UnitSquareFeet MeasureUnit = "sqft"
	UnitMeters     MeasureUnit = "meters"
)

// Valid indica si la unidad es una de las dos soportadas por los rollos.
func (u MeasureUnit) Valid() bool {
	return u == UnitSquareFeet || u == UnitMeters
}

// Roll representa un rollo físico de película PPF.
// Meters/SquareFeet son la capacidad original; Remaining* solo disminuye.
type Roll struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Meters          decimal.Decimal `json:"meters"`
	SquareFeet      decimal.Decimal `json:"square_feet"`
	RemainingMeters decimal.Decimal `json:"remaining_meters"`
	RemainingSqft   decimal.Decimal `json:"remaining_sqft"`
	Status          RollStatus      `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Remaining devuelve lo que queda del rollo en la unidad indicada.
func (r Roll) Remaining(unit MeasureUnit) decimal.Decimal {
	if unit == UnitMeters {
		return r.RemainingMeters
	}
	return r.RemainingSqft
}

// Original devuelve la capacidad original en la unidad indicada.
func (r Roll) Original(unit MeasureUnit) decimal.Decimal {
	if unit == UnitMeters {
		return r.Meters
	}
	return r.SquareFeet
}

// DrivingUnit es la unidad con la que se registró el rollo: pies cuadrados si vienen informados, si no metros.
func (r Roll) DrivingUnit() MeasureUnit {
	if r.SquareFeet.GreaterThan(decimal.Zero) {
		return UnitSquareFeet
	}
	return UnitMeters
}
