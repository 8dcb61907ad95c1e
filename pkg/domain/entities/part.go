package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartNumber represents a unique part identifier
type PartNumber string

// DefaultShiftMinutes is the available run time of one standard shift
const DefaultShiftMinutes = 420

// Part represents a molded part with its manufacturing parameters
type Part struct {
	PartNumber       PartNumber
	Name             string
	CycleTimeSeconds float64
	Cavity           int
	Tonnage          string
	MachineID        string // empty = planned against the tonnage class
}

// NewPart creates a validated Part. Zero cycle time is accepted here so that
// incomplete master data can still be loaded and reported during planning.
func NewPart(partNumber PartNumber, name string, cycleTimeSeconds float64, cavity int, tonnage, machineID string) (*Part, error) {
	if string(partNumber) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}
	if cycleTimeSeconds < 0 {
		return nil, fmt.Errorf("cycle time cannot be negative, got %v", cycleTimeSeconds)
	}
	if cavity < 0 {
		return nil, fmt.Errorf("cavity cannot be negative, got %d", cavity)
	}

	return &Part{
		PartNumber:       partNumber,
		Name:             name,
		CycleTimeSeconds: cycleTimeSeconds,
		Cavity:           cavity,
		Tonnage:          tonnage,
		MachineID:        machineID,
	}, nil
}

// OutputPerShift returns the whole number of pieces one shift of the given
// length produces. Missing cycle time or cavity yields 0.
func (p *Part) OutputPerShift(shiftMinutes int) int64 {
	if p.CycleTimeSeconds <= 0 || p.Cavity <= 0 || shiftMinutes <= 0 {
		return 0
	}

	available := decimal.NewFromInt(int64(shiftMinutes) * 60)
	cycles := available.Div(decimal.NewFromFloat(p.CycleTimeSeconds))
	return cycles.Mul(decimal.NewFromInt(int64(p.Cavity))).Floor().IntPart()
}

// Plannable reports whether the part has enough master data to be planned
func (p *Part) Plannable(shiftMinutes int) bool {
	return p.OutputPerShift(shiftMinutes) > 0
}
