package repositories

import (
	"context"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

//go:generate mockgen -source=demand_repository.go -destination=demand_repository_mock.go -package=repositories

// DemandRepository provides access to daily and monthly forecasts
type DemandRepository interface {
	// GetDailyDemand returns forecast records for parts dated within [from, to].
	GetDailyDemand(ctx context.Context, parts []entities.PartNumber, from, to time.Time) ([]*entities.DemandRecord, error)
	GetMonthlyForecast(ctx context.Context, month string) ([]*entities.MonthlyForecast, error)
}
