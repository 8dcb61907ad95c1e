package entities

import (
	"fmt"
	"strings"
)

// Machine is an injection press
type Machine struct {
	MachineID string
	Tonnage   string
	Active    bool
}

// Label returns the display label used by operators, e.g. "MC-01 (450T)"
func (m *Machine) Label() string {
	return fmt.Sprintf("%s (%sT)", m.MachineID, strings.TrimSuffix(m.Tonnage, "T"))
}

// CapacityRules holds the site rules used for capacity analysis
type CapacityRules struct {
	ShiftHours        float64
	ShiftsPerDay      int
	Efficiency        float64
	ChangeoverMinutes float64
	StartupMinutes    float64
}

// DefaultCapacityRules returns the rules applied when none are configured
func DefaultCapacityRules() CapacityRules {
	return CapacityRules{
		ShiftHours:        7,
		ShiftsPerDay:      3,
		Efficiency:        0.9,
		ChangeoverMinutes: 30,
		StartupMinutes:    15,
	}
}

// EffectiveHoursPerDay returns shift hours × shifts × efficiency
func (r CapacityRules) EffectiveHoursPerDay() float64 {
	return r.ShiftHours * float64(r.ShiftsPerDay) * r.Efficiency
}
