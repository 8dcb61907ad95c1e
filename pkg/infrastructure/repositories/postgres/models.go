package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read models over the plant database. The planner never writes to these tables.

// masterRow maps the MASTER part table
type masterRow struct {
	PartNo    string  `gorm:"column:part_no"`
	PartName  string  `gorm:"column:part_name"`
	CycleTime float64 `gorm:"column:cycle_time"`
	Cavity    int     `gorm:"column:cav"`
	Tonnage   string  `gorm:"column:tonage"`
	MachineID string  `gorm:"column:machine_id"`
}

func (masterRow) TableName() string { return "MASTER" }

// machineRow maps the machine table
type machineRow struct {
	MachineID string `gorm:"column:machine_id"`
	Tonnage   string `gorm:"column:tonnage"`
	Status    string `gorm:"column:status"`
}

func (machineRow) TableName() string { return "machine" }

// shiftRow maps the SHIFT calendar table
type shiftRow struct {
	DayType    string `gorm:"column:day_type"`
	ShiftLabel string `gorm:"column:shift_name"`
}

func (shiftRow) TableName() string { return "SHIFT" }

// dailyForecastRow maps the v_daily_forecast view
type dailyForecastRow struct {
	PartNo       string          `gorm:"column:part_no"`
	ForecastDate time.Time       `gorm:"column:forecast_date"`
	Quantity     decimal.Decimal `gorm:"column:qty_forecast"`
}

func (dailyForecastRow) TableName() string { return "v_daily_forecast" }

// stockRow maps v_fg_latest_stock and v_wip_latest_stock
type stockRow struct {
	PartNo string              `gorm:"column:part_no"`
	Stock  decimal.NullDecimal `gorm:"column:stock"`
}

// rulesRow maps the rules table; the newest row wins
type rulesRow struct {
	ID          int64   `gorm:"column:id"`
	ShiftHours  float64 `gorm:"column:shift_hours"`
	ShiftPerDay int     `gorm:"column:shift_per_day"`
	Efficiency  float64 `gorm:"column:efficiency"`
	DandoryMin  float64 `gorm:"column:dandory_min"`
	StartupMin  float64 `gorm:"column:startup_min"`
}

func (rulesRow) TableName() string { return "rules" }

// monthlyForecastRow maps the forecast_monthly table
type monthlyForecastRow struct {
	ForecastMonth string          `gorm:"column:forecast_month"`
	PartNo        string          `gorm:"column:part_no"`
	Quantity      decimal.Decimal `gorm:"column:forecast_qty_monthly"`
	RevisionNo    int             `gorm:"column:revision_no"`
	CustomerName  string          `gorm:"column:customer_name"`
}

func (monthlyForecastRow) TableName() string { return "forecast_monthly" }
