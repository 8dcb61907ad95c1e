package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

// DemandRepository provides in-memory forecast storage
type DemandRepository struct {
	mu      sync.RWMutex
	daily   []entities.DemandRecord
	monthly []entities.MonthlyForecast
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		daily:   []entities.DemandRecord{},
		monthly: []entities.MonthlyForecast{},
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemand loads daily forecast records into the repository
func (r *DemandRepository) LoadDemand(records []*entities.DemandRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range records {
		r.daily = append(r.daily, *record)
	}
	return nil
}

// LoadMonthlyForecast loads monthly forecast revisions into the repository
func (r *DemandRepository) LoadMonthlyForecast(rows []*entities.MonthlyForecast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.monthly = append(r.monthly, *row)
	}
	return nil
}

// GetDailyDemand returns the records of the given parts dated within [from, to]
func (r *DemandRepository) GetDailyDemand(
	_ context.Context,
	parts []entities.PartNumber,
	from, to time.Time,
) ([]*entities.DemandRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		wanted[part] = true
	}
	from, to = entities.DateOf(from), entities.DateOf(to)

	var records []*entities.DemandRecord
	for i := range r.daily {
		record := r.daily[i]
		if !wanted[record.PartNumber] || record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// GetMonthlyForecast returns every revision recorded for month
func (r *DemandRepository) GetMonthlyForecast(_ context.Context, month string) ([]*entities.MonthlyForecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rows []*entities.MonthlyForecast
	for i := range r.monthly {
		if r.monthly[i].Month != month {
			continue
		}
		row := r.monthly[i]
		rows = append(rows, &row)
	}
	return rows, nil
}
