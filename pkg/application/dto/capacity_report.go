package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// CapacityRequest selects the forecast month to analyze
type CapacityRequest struct {
	Month       string `json:"month" yaml:"month"` // YYYY-MM
	WorkingDays int    `json:"working_days" yaml:"working_days"`
}

// PartCapacity is the capacity requirement of one forecast line
type PartCapacity struct {
	PartNumber    entities.PartNumber `json:"part_no"`
	PartName      string              `json:"part_name"`
	Tonnage       string              `json:"tonnage"`
	ForecastQty   decimal.Decimal     `json:"forecast_qty"`
	CycleTime     float64             `json:"cycle_time"`
	Cavity        int                 `json:"cavity"`
	OutputPerHour float64             `json:"output_per_hour"`
	RequiredHours float64             `json:"required_hours"`
	RequiredDays  float64             `json:"required_days"`
}

// ClassLoad is the monthly load of one tonnage class
type ClassLoad struct {
	Tonnage            string  `json:"tonnage"`
	Parts              int     `json:"parts"`
	ProductionHours    float64 `json:"production_hours"`
	ChangeoverHours    float64 `json:"changeover_hours"`
	StartupHours       float64 `json:"startup_hours"`
	TotalHours         float64 `json:"total_hours"`
	LoadDays           float64 `json:"load_days"`
	CapacityDays       float64 `json:"capacity_days"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Status             string  `json:"status"`
}

// MachineAllocation is the share of a class's hours given to one press
type MachineAllocation struct {
	MachineID     string  `json:"machine_id"`
	AssignedHours float64 `json:"assigned_hours"`
}

// CapacityReport contains the monthly capacity analysis
type CapacityReport struct {
	Month                string                         `json:"month"`
	WorkingDays          int                            `json:"working_days"`
	EffectiveHoursPerDay float64                        `json:"effective_hours_per_day"`
	Parts                []PartCapacity                 `json:"parts"`
	Classes              []ClassLoad                    `json:"classes"`
	Allocations          map[string][]MachineAllocation `json:"allocations,omitempty"`
	Unmatched            []entities.PartNumber          `json:"unmatched"`
}
