package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// MasterDataValidator checks that master data can be planned before a run
type MasterDataValidator struct {
	shiftMinutes int
}

// NewMasterDataValidator creates a validator judging output per shift at shiftMinutes
func NewMasterDataValidator(shiftMinutes int) *MasterDataValidator {
	return &MasterDataValidator{shiftMinutes: shiftMinutes}
}

// ValidationResult contains the results of master data validation.
// Errors block planning; warnings only reduce what gets planned.
type ValidationResult struct {
	DuplicateParts    []entities.PartNumber
	UnplannableParts  []entities.PartNumber
	UnassignedParts   []entities.PartNumber
	UnknownMachines   []string
	UnmatchedForecast []entities.PartNumber
	DuplicateShifts   []string
	EmptyCalendar     bool
	Errors            []string
	Warnings          []string
}

// Valid reports whether no blocking error was found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate runs every check over one snapshot of master data
func (v *MasterDataValidator) Validate(
	parts []*entities.Part,
	machines []*entities.Machine,
	monthly []*entities.MonthlyForecast,
	rules []*entities.ShiftRule,
) *ValidationResult {
	result := &ValidationResult{
		DuplicateParts:    make([]entities.PartNumber, 0),
		UnplannableParts:  make([]entities.PartNumber, 0),
		UnassignedParts:   make([]entities.PartNumber, 0),
		UnknownMachines:   make([]string, 0),
		UnmatchedForecast: make([]entities.PartNumber, 0),
		DuplicateShifts:   make([]string, 0),
		Errors:            make([]string, 0),
		Warnings:          make([]string, 0),
	}

	if len(parts) == 0 {
		result.Errors = append(result.Errors, "part master is empty")
	}

	result.DuplicateParts = v.detectDuplicateParts(parts)
	if len(result.DuplicateParts) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate part numbers found: %v", result.DuplicateParts))
	}

	result.EmptyCalendar = !hasWorkingShift(rules)
	if result.EmptyCalendar {
		result.Errors = append(result.Errors, "shift calendar has no weekday or Saturday shifts")
	}

	result.DuplicateShifts = detectDuplicateShifts(rules)
	if len(result.DuplicateShifts) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("shift calendar repeats %d rule(s), each is used once: %v", len(result.DuplicateShifts), result.DuplicateShifts))
	}

	v.checkParts(parts, machines, result)

	result.UnmatchedForecast = detectUnmatchedForecast(parts, monthly)
	if len(result.UnmatchedForecast) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d monthly forecast part(s) not in master: %v", len(result.UnmatchedForecast), result.UnmatchedForecast))
	}

	return result
}

// detectDuplicateParts reports each repeated part number once, in first-repeat order
func (v *MasterDataValidator) detectDuplicateParts(parts []*entities.Part) []entities.PartNumber {
	seen := make(map[entities.PartNumber]int)
	duplicates := make([]entities.PartNumber, 0)

	for _, part := range parts {
		if part == nil {
			continue
		}
		seen[part.PartNumber]++
		if seen[part.PartNumber] == 2 {
			duplicates = append(duplicates, part.PartNumber)
		}
	}

	return duplicates
}

func (v *MasterDataValidator) checkParts(parts []*entities.Part, machines []*entities.Machine, result *ValidationResult) {
	active := make(map[string]bool, len(machines))
	for _, machine := range machines {
		if machine != nil && machine.Active {
			active[machine.MachineID] = true
		}
	}
	unknown := make(map[string]bool)

	for _, part := range parts {
		if part == nil {
			continue
		}
		if !part.Plannable(v.shiftMinutes) {
			result.UnplannableParts = append(result.UnplannableParts, part.PartNumber)
		}
		switch {
		case part.MachineID == "":
			result.UnassignedParts = append(result.UnassignedParts, part.PartNumber)
		case len(active) > 0 && !active[part.MachineID] && !unknown[part.MachineID]:
			unknown[part.MachineID] = true
			result.UnknownMachines = append(result.UnknownMachines, part.MachineID)
		}
	}

	if len(result.UnplannableParts) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d part(s) produce nothing per shift (cycle time or cavity missing): %v", len(result.UnplannableParts), result.UnplannableParts))
	}
	if len(result.UnassignedParts) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d part(s) have no machine: %v", len(result.UnassignedParts), result.UnassignedParts))
	}
	if len(result.UnknownMachines) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("parts reference inactive or unknown machines: %v", result.UnknownMachines))
	}
}

func hasWorkingShift(rules []*entities.ShiftRule) bool {
	for _, rule := range rules {
		if rule != nil && rule.DayType != entities.Sunday {
			return true
		}
	}
	return false
}

// detectDuplicateShifts reports each repeated rule once as "DAYTYPE/label"
func detectDuplicateShifts(rules []*entities.ShiftRule) []string {
	seen := make(map[entities.ShiftRule]int)
	duplicates := make([]string, 0)

	for _, rule := range rules {
		if rule == nil {
			continue
		}
		seen[*rule]++
		if seen[*rule] == 2 {
			duplicates = append(duplicates, fmt.Sprintf("%s/%s", rule.DayType, rule.ShiftLabel))
		}
	}

	return duplicates
}

// detectUnmatchedForecast matches forecast rows on trimmed upper-case part numbers
func detectUnmatchedForecast(parts []*entities.Part, monthly []*entities.MonthlyForecast) []entities.PartNumber {
	key := func(pn entities.PartNumber) entities.PartNumber {
		return entities.PartNumber(strings.ToUpper(strings.TrimSpace(string(pn))))
	}

	master := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		if part != nil {
			master[key(part.PartNumber)] = true
		}
	}

	seen := make(map[entities.PartNumber]bool)
	unmatched := make([]entities.PartNumber, 0)
	for _, row := range monthly {
		if row == nil {
			continue
		}
		k := key(row.PartNumber)
		if master[k] || seen[k] {
			continue
		}
		seen[k] = true
		unmatched = append(unmatched, k)
	}
	return unmatched
}
