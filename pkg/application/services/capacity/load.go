package capacity

import (
	"sort"
	"strings"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

const (
	// HoursPerWorkday converts load hours into operator days
	HoursPerWorkday = 8.0
	// DefaultWorkingDays is the month length used when none is given
	DefaultWorkingDays = 30
)

// LoadStatus classifies a month's load in days
type LoadStatus int

const (
	VerySafe LoadStatus = iota
	Safe
	NeedOvertime
	NeedAdjustment
)

// String method for LoadStatus enum
func (s LoadStatus) String() string {
	switch s {
	case VerySafe:
		return "VERY_SAFE"
	case Safe:
		return "SAFE"
	case NeedOvertime:
		return "NEED_OVERTIME"
	case NeedAdjustment:
		return "NEED_ADJUSTMENT"
	default:
		return "UNKNOWN"
	}
}

// ClassifyLoad maps load days onto the operator bands
func ClassifyLoad(days float64) LoadStatus {
	switch {
	case days > 26:
		return NeedAdjustment
	case days > 22:
		return NeedOvertime
	case days >= 20:
		return Safe
	default:
		return VerySafe
	}
}

// NormalizePartNumber trims and upper-cases a part number from forecast files
func NormalizePartNumber(raw string) entities.PartNumber {
	return entities.PartNumber(strings.ToUpper(strings.TrimSpace(raw)))
}

// LatestRevision keeps the highest revision per part. Output is sorted by part number.
func LatestRevision(rows []*entities.MonthlyForecast) []*entities.MonthlyForecast {
	latest := make(map[entities.PartNumber]*entities.MonthlyForecast)
	for _, row := range rows {
		if row == nil {
			continue
		}
		key := NormalizePartNumber(string(row.PartNumber))
		if current, ok := latest[key]; !ok || row.Revision > current.Revision {
			normalized := *row
			normalized.PartNumber = key
			latest[key] = &normalized
		}
	}

	result := make([]*entities.MonthlyForecast, 0, len(latest))
	for _, row := range latest {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PartNumber < result[j].PartNumber
	})
	return result
}

// PartRequirement computes the capacity row of one forecast line
func PartRequirement(forecast *entities.MonthlyForecast, part *entities.Part, rules entities.CapacityRules) dto.PartCapacity {
	quantity := forecast.Quantity.InexactFloat64()
	perHour := OutputPerHour(part.CycleTimeSeconds, part.Cavity, rules.Efficiency)
	hours := RequiredHours(quantity, perHour)

	return dto.PartCapacity{
		PartNumber:    part.PartNumber,
		PartName:      part.Name,
		Tonnage:       part.Tonnage,
		ForecastQty:   forecast.Quantity,
		CycleTime:     part.CycleTimeSeconds,
		Cavity:        part.Cavity,
		OutputPerHour: perHour,
		RequiredHours: hours,
		RequiredDays:  RequiredDays(hours, rules.EffectiveHoursPerDay()),
	}
}

// CapacityDays is the available press time of one month expressed in workdays
func CapacityDays(workingDays int, rules entities.CapacityRules) float64 {
	return 24 * float64(workingDays) * rules.Efficiency / HoursPerWorkday
}

// MachineClassLoad groups forecast lines by the tonnage class of their part.
// Forecast lines with no master part (or no tonnage) are returned as unmatched.
// An empty classes filter keeps every class.
func MachineClassLoad(
	forecast []*entities.MonthlyForecast,
	parts []*entities.Part,
	rules entities.CapacityRules,
	workingDays int,
	classes []string,
) ([]dto.ClassLoad, []entities.PartNumber) {
	master := make(map[entities.PartNumber]*entities.Part, len(parts))
	for _, part := range parts {
		if part != nil {
			master[NormalizePartNumber(string(part.PartNumber))] = part
		}
	}

	type accumulator struct {
		productionSeconds float64
		parts             map[entities.PartNumber]struct{}
	}
	byClass := make(map[string]*accumulator)
	unmatched := []entities.PartNumber{}

	for _, row := range forecast {
		if row == nil {
			continue
		}
		key := NormalizePartNumber(string(row.PartNumber))
		part, ok := master[key]
		if !ok || part.Tonnage == "" {
			unmatched = append(unmatched, key)
			continue
		}

		acc, ok := byClass[part.Tonnage]
		if !ok {
			acc = &accumulator{parts: make(map[entities.PartNumber]struct{})}
			byClass[part.Tonnage] = acc
		}
		acc.productionSeconds += row.Quantity.InexactFloat64() * part.CycleTimeSeconds
		acc.parts[key] = struct{}{}
	}

	keep := make(map[string]bool, len(classes))
	for _, class := range classes {
		keep[class] = true
	}

	capacityDays := CapacityDays(workingDays, rules)
	loads := make([]dto.ClassLoad, 0, len(byClass))
	for tonnage, acc := range byClass {
		if len(keep) > 0 && !keep[tonnage] {
			continue
		}

		production := acc.productionSeconds / 3600
		changeover := float64(len(acc.parts)-1) * rules.ChangeoverMinutes / 60
		if changeover < 0 {
			changeover = 0
		}
		startup := rules.StartupMinutes / 60
		total := production + changeover + startup
		loadDays := total / HoursPerWorkday

		load := dto.ClassLoad{
			Tonnage:         tonnage,
			Parts:           len(acc.parts),
			ProductionHours: production,
			ChangeoverHours: changeover,
			StartupHours:    startup,
			TotalHours:      total,
			LoadDays:        loadDays,
			CapacityDays:    capacityDays,
			Status:          ClassifyLoad(loadDays).String(),
		}
		if capacityDays > 0 {
			load.UtilizationPercent = loadDays / capacityDays * 100
		}
		loads = append(loads, load)
	}

	sort.Slice(loads, func(i, j int) bool {
		return tonnageValue(loads[i].Tonnage) < tonnageValue(loads[j].Tonnage) ||
			(tonnageValue(loads[i].Tonnage) == tonnageValue(loads[j].Tonnage) && loads[i].Tonnage < loads[j].Tonnage)
	})
	return loads, unmatched
}

// tonnageValue orders "250T" before "1500T"
func tonnageValue(tonnage string) int {
	value := 0
	for _, r := range tonnage {
		if r < '0' || r > '9' {
			break
		}
		value = value*10 + int(r-'0')
	}
	return value
}
