package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

const activeMachineStatus = "Active"

// Repository reads master data, forecasts, stock and the shift calendar from PostgreSQL
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var (
	_ repositories.PartRepository     = (*Repository)(nil)
	_ repositories.MachineRepository  = (*Repository)(nil)
	_ repositories.DemandRepository   = (*Repository)(nil)
	_ repositories.StockRepository    = (*Repository)(nil)
	_ repositories.CalendarRepository = (*Repository)(nil)
)

// NewRepository creates a read-only repository over db
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetParts(ctx context.Context, machineID string) ([]*entities.Part, error) {
	var rows []masterRow
	query := r.db.WithContext(ctx).Model(&masterRow{})
	if machineID != "" {
		query = query.Where("machine_id = ?", machineID)
	}
	if err := query.Order("part_no").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query MASTER: %w", err)
	}

	parts := make([]*entities.Part, 0, len(rows))
	for _, row := range rows {
		part, err := row.toEntity()
		if err != nil {
			r.logger.Warn("skipping invalid master row", zap.String("part_no", row.PartNo), zap.Error(err))
			continue
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (r *Repository) GetActiveMachines(ctx context.Context) ([]*entities.Machine, error) {
	var rows []machineRow
	err := r.db.WithContext(ctx).
		Where("status = ?", activeMachineStatus).
		Order("machine_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query machine: %w", err)
	}

	machines := make([]*entities.Machine, 0, len(rows))
	for _, row := range rows {
		machines = append(machines, row.toEntity())
	}
	return machines, nil
}

func (r *Repository) GetDailyDemand(
	ctx context.Context,
	parts []entities.PartNumber,
	from, to time.Time,
) ([]*entities.DemandRecord, error) {
	if len(parts) == 0 {
		return []*entities.DemandRecord{}, nil
	}

	var rows []dailyForecastRow
	err := r.db.WithContext(ctx).
		Where("part_no IN ?", partStrings(parts)).
		Where("forecast_date >= ? AND forecast_date <= ?", entities.DateKey(from), entities.DateKey(to)).
		Order("part_no, forecast_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query v_daily_forecast: %w", err)
	}

	records := make([]*entities.DemandRecord, 0, len(rows))
	for _, row := range rows {
		record, err := entities.NewDemandRecord(entities.PartNumber(row.PartNo), row.ForecastDate, row.Quantity)
		if err != nil {
			r.logger.Warn("skipping invalid forecast row",
				zap.String("part_no", row.PartNo), zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *Repository) GetMonthlyForecast(ctx context.Context, month string) ([]*entities.MonthlyForecast, error) {
	var rows []monthlyForecastRow
	err := r.db.WithContext(ctx).
		Where("forecast_month = ?", month).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query forecast_monthly: %w", err)
	}

	forecasts := make([]*entities.MonthlyForecast, 0, len(rows))
	for _, row := range rows {
		forecasts = append(forecasts, row.toEntity())
	}
	return forecasts, nil
}

func (r *Repository) GetStock(ctx context.Context, parts []entities.PartNumber) ([]*entities.StockRecord, error) {
	if len(parts) == 0 {
		return []*entities.StockRecord{}, nil
	}
	keys := partStrings(parts)

	var fg, wip []stockRow
	err := r.db.WithContext(ctx).
		Table("v_fg_latest_stock").
		Select("part_no, fg_stock AS stock").
		Where("part_no IN ?", keys).
		Find(&fg).Error
	if err != nil {
		return nil, fmt.Errorf("query v_fg_latest_stock: %w", err)
	}
	err = r.db.WithContext(ctx).
		Table("v_wip_latest_stock").
		Select("part_no, wip_stock AS stock").
		Where("part_no IN ?", keys).
		Find(&wip).Error
	if err != nil {
		return nil, fmt.Errorf("query v_wip_latest_stock: %w", err)
	}

	return mergeStock(parts, fg, wip), nil
}

func (r *Repository) GetShiftRules(ctx context.Context) ([]*entities.ShiftRule, error) {
	var rows []shiftRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query SHIFT: %w", err)
	}

	rules := make([]*entities.ShiftRule, 0, len(rows))
	for _, row := range rows {
		rule, err := entities.NewShiftRule(row.DayType, row.ShiftLabel)
		if err != nil {
			r.logger.Warn("skipping invalid shift row",
				zap.String("day_type", row.DayType), zap.Error(err))
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *Repository) GetCapacityRules(ctx context.Context) (*entities.CapacityRules, error) {
	var row rulesRow
	err := r.db.WithContext(ctx).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := entities.DefaultCapacityRules()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}

	rules := row.toEntity()
	return &rules, nil
}

func (row masterRow) toEntity() (*entities.Part, error) {
	return entities.NewPart(
		entities.PartNumber(strings.TrimSpace(row.PartNo)),
		row.PartName,
		row.CycleTime,
		row.Cavity,
		row.Tonnage,
		row.MachineID,
	)
}

func (row machineRow) toEntity() *entities.Machine {
	return &entities.Machine{
		MachineID: row.MachineID,
		Tonnage:   row.Tonnage,
		Active:    strings.EqualFold(row.Status, activeMachineStatus),
	}
}

func (row monthlyForecastRow) toEntity() *entities.MonthlyForecast {
	return &entities.MonthlyForecast{
		PartNumber: entities.PartNumber(row.PartNo),
		Month:      row.ForecastMonth,
		Customer:   row.CustomerName,
		Quantity:   row.Quantity,
		Revision:   row.RevisionNo,
	}
}

func (row rulesRow) toEntity() entities.CapacityRules {
	return entities.CapacityRules{
		ShiftHours:        row.ShiftHours,
		ShiftsPerDay:      row.ShiftPerDay,
		Efficiency:        row.Efficiency,
		ChangeoverMinutes: row.DandoryMin,
		StartupMinutes:    row.StartupMin,
	}
}

// mergeStock joins the FG and WIP views into one record per requested part.
// A part missing from a view keeps that component null.
func mergeStock(parts []entities.PartNumber, fg, wip []stockRow) []*entities.StockRecord {
	byPart := make(map[entities.PartNumber]*entities.StockRecord, len(parts))
	records := make([]*entities.StockRecord, 0, len(parts))
	for _, part := range parts {
		if _, ok := byPart[part]; ok {
			continue
		}
		record := &entities.StockRecord{PartNumber: part}
		byPart[part] = record
		records = append(records, record)
	}

	for _, row := range fg {
		if record, ok := byPart[entities.PartNumber(row.PartNo)]; ok {
			record.FinishedGoods = row.Stock
		}
	}
	for _, row := range wip {
		if record, ok := byPart[entities.PartNumber(row.PartNo)]; ok {
			record.WorkInProgress = row.Stock
		}
	}
	return records
}

func partStrings(parts []entities.PartNumber) []string {
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		keys = append(keys, string(part))
	}
	return keys
}
